// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"math/big"

	"github.com/vechain/nftstaking/builtin/reverts"
	"github.com/vechain/nftstaking/builtin/solidity"
	"github.com/vechain/nftstaking/log"
	"github.com/vechain/nftstaking/state"
	"github.com/vechain/nftstaking/thor"
)

var logger = log.WithContext("pkg", "custody")

var (
	adminSlot     = thor.Blake2b([]byte("admin"))
	nextIDSlot    = thor.Blake2b([]byte("nextTokenId"))
	tokensSlot    = thor.Blake2b([]byte("tokens"))
	balancesSlot  = thor.Blake2b([]byte("balances"))
	operatorsSlot = thor.Blake2b([]byte("operators"))
)

var (
	errNonexistent  = reverts.New(reverts.NotFound, "invalid token id")
	errOnlyAdmin    = reverts.New(reverts.Unauthorized, "caller is not the owner")
	errWrongOwner   = reverts.New(reverts.Unauthorized, "transfer from incorrect owner")
	errNotApproved  = reverts.New(reverts.NotApproved, "caller is not token owner nor approved")
	errZeroReceiver = reverts.New(reverts.InvalidInput, "transfer to the zero address")
	errSelfApproval = reverts.New(reverts.InvalidInput, "approval to current owner")
)

type token struct {
	Owner    thor.Address
	Approved thor.Address
}

type operatorKey struct {
	owner, operator thor.Address
}

func (k operatorKey) Bytes() []byte {
	return append(k.owner.Bytes(), k.operator.Bytes()...)
}

// Custody is the registry of non-fungible tokens and their owners.
type Custody struct {
	addr      thor.Address
	admin     *solidity.Address
	nextID    *solidity.Uint256
	tokens    *solidity.Mapping[solidity.Uint64Key, *token]
	balances  *solidity.Mapping[thor.Address, uint64]
	operators *solidity.Mapping[operatorKey, bool]
}

// New create a new instance.
func New(addr thor.Address, state *state.State) *Custody {
	ctx := solidity.NewContext(addr, state)
	return &Custody{
		addr:      addr,
		admin:     solidity.NewAddress(ctx, adminSlot),
		nextID:    solidity.NewUint256(ctx, nextIDSlot),
		tokens:    solidity.NewMapping[solidity.Uint64Key, *token](ctx, tokensSlot),
		balances:  solidity.NewMapping[thor.Address, uint64](ctx, balancesSlot),
		operators: solidity.NewMapping[operatorKey, bool](ctx, operatorsSlot),
	}
}

// InitAdmin sets the identity allowed to mint. Used at genesis.
func (c *Custody) InitAdmin(admin thor.Address) {
	c.admin.Set(admin)
}

func (c *Custody) getToken(tokenID uint64) (*token, error) {
	key := solidity.Uint64Key(tokenID)
	if ok, err := c.tokens.Exists(key); err != nil {
		return nil, err
	} else if !ok {
		return nil, errNonexistent
	}
	return c.tokens.Get(key)
}

func (c *Custody) addBalance(owner thor.Address, delta int64) error {
	bal, err := c.balances.Get(owner)
	if err != nil {
		return err
	}
	bal = uint64(int64(bal) + delta)
	if bal == 0 {
		c.balances.Delete(owner)
		return nil
	}
	return c.balances.Set(owner, bal)
}

// Mint creates the next token id and assigns it to the receiver.
func (c *Custody) Mint(caller, to thor.Address) (uint64, error) {
	ok, err := c.admin.Is(caller)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, errOnlyAdmin
	}
	if to.IsZero() {
		return 0, errZeroReceiver
	}
	next, err := c.nextID.Get()
	if err != nil {
		return 0, err
	}
	id := next.Uint64()
	if err := c.tokens.Set(solidity.Uint64Key(id), &token{Owner: to}); err != nil {
		return 0, err
	}
	if err := c.addBalance(to, 1); err != nil {
		return 0, err
	}
	c.nextID.Set(new(big.Int).SetUint64(id + 1))
	logger.Debug("token minted", "id", id, "to", to)
	return id, nil
}

// OwnerOf returns the owner of an existing token.
func (c *Custody) OwnerOf(tokenID uint64) (thor.Address, error) {
	tok, err := c.getToken(tokenID)
	if err != nil {
		return thor.Address{}, err
	}
	return tok.Owner, nil
}

func (c *Custody) BalanceOf(owner thor.Address) (uint64, error) {
	return c.balances.Get(owner)
}

// TotalMinted returns the count of tokens ever minted.
func (c *Custody) TotalMinted() (uint64, error) {
	n, err := c.nextID.Get()
	if err != nil {
		return 0, err
	}
	return n.Uint64(), nil
}

func (c *Custody) GetApproved(tokenID uint64) (thor.Address, error) {
	tok, err := c.getToken(tokenID)
	if err != nil {
		return thor.Address{}, err
	}
	return tok.Approved, nil
}

func (c *Custody) IsApprovedForAll(owner, operator thor.Address) (bool, error) {
	return c.operators.Get(operatorKey{owner, operator})
}

// IsApprovedForTransfer reports whether the operator may move the token on behalf of its owner.
func (c *Custody) IsApprovedForTransfer(tokenID uint64, operator thor.Address) (bool, error) {
	tok, err := c.getToken(tokenID)
	if err != nil {
		return false, err
	}
	return c.isApprovedOrOwner(tok, operator)
}

func (c *Custody) isApprovedOrOwner(tok *token, operator thor.Address) (bool, error) {
	if tok.Owner == operator || tok.Approved == operator {
		return true, nil
	}
	return c.IsApprovedForAll(tok.Owner, operator)
}

// Approve lets the operator transfer one token. The zero operator revokes it.
func (c *Custody) Approve(caller, operator thor.Address, tokenID uint64) error {
	tok, err := c.getToken(tokenID)
	if err != nil {
		return err
	}
	if operator == tok.Owner {
		return errSelfApproval
	}
	if caller != tok.Owner {
		all, err := c.IsApprovedForAll(tok.Owner, caller)
		if err != nil {
			return err
		}
		if !all {
			return errNotApproved
		}
	}
	tok.Approved = operator
	return c.tokens.Set(solidity.Uint64Key(tokenID), tok)
}

// SetApprovalForAll lets the operator transfer every token of the caller.
func (c *Custody) SetApprovalForAll(caller, operator thor.Address, approved bool) error {
	if caller == operator {
		return errSelfApproval
	}
	key := operatorKey{caller, operator}
	if !approved {
		c.operators.Delete(key)
		return nil
	}
	return c.operators.Set(key, true)
}

// Transfer moves the token from its owner to the receiver on behalf of the operator.
// The single token approval is cleared.
func (c *Custody) Transfer(operator, from, to thor.Address, tokenID uint64) error {
	tok, err := c.getToken(tokenID)
	if err != nil {
		return err
	}
	if tok.Owner != from {
		return errWrongOwner
	}
	if to.IsZero() {
		return errZeroReceiver
	}
	ok, err := c.isApprovedOrOwner(tok, operator)
	if err != nil {
		return err
	}
	if !ok {
		return errNotApproved
	}

	if err := c.addBalance(from, -1); err != nil {
		return err
	}
	if err := c.addBalance(to, 1); err != nil {
		return err
	}
	if err := c.tokens.Set(solidity.Uint64Key(tokenID), &token{Owner: to}); err != nil {
		return err
	}
	logger.Trace("token transferred", "id", tokenID, "from", from, "to", to)
	return nil
}
