// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/nftstaking/builtin"
	"github.com/vechain/nftstaking/genesis"
	"github.com/vechain/nftstaking/ledger"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

func importAction(ctx *cli.Context) error {
	if _, err := initLogger(ctx); err != nil {
		return err
	}

	path := ctx.String(importFileFlag.Name)
	if path == "" {
		return errors.Errorf("missing -%s", importFileFlag.Name)
	}
	bulk, err := genesis.LoadBulk(path)
	if err != nil {
		return err
	}

	var caller *thor.Address
	if s := ctx.String(importCallerFlag.Name); s != "" {
		addr, err := thor.ParseAddress(s)
		if err != nil {
			return errors.WithMessage(err, "caller")
		}
		caller = &addr
	}

	db, location, err := openPersistentDB(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	l := ledger.New(state.NewStater(db), nil)
	if err := importBulk(l, bulk, caller); err != nil {
		return err
	}
	logger.Info("classification imported", "file", path, "db", location)
	return nil
}

// importBulk applies the document in a single operation, as caller or as the
// stored classification admin when caller is nil.
func importBulk(l *ledger.Ledger, bulk *genesis.Bulk, caller *thor.Address) error {
	return l.Update("import", func(st *state.State) error {
		initialized, err := genesis.Initialized(st)
		if err != nil {
			return err
		}
		if !initialized {
			return errors.New("ledger is not initialized, start the node once with --persist first")
		}

		c := builtin.Classification.WithState(st)
		as := caller
		if as == nil {
			admin, err := c.Admin()
			if err != nil {
				return err
			}
			as = &admin
		}
		return bulk.Apply(c, *as)
	})
}
