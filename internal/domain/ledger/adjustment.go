package ledger

import (
	"bytes"
	"sort"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Adjustment is one balance change against one account
type Adjustment struct {
	AccountID uuid.UUID           `json:"account_id" bson:"account_id"`
	Delta     shared.BalanceDelta `json:"delta" bson:"delta"`
}

// Inverse returns the adjustment that undoes a
func (a Adjustment) Inverse() Adjustment {
	return Adjustment{AccountID: a.AccountID, Delta: a.Delta.Inverse()}
}

// Plan collects the adjustments a single mutation issues. Reversals and applications
// are kept as separate steps even when they hit the same account, and zero deltas
// are never dropped.
type Plan struct {
	steps []Adjustment
}

// Reverse queues the inverse of each effect
func (p *Plan) Reverse(effects ...Adjustment) *Plan {
	for _, e := range effects {
		p.steps = append(p.steps, e.Inverse())
	}
	return p
}

// Apply queues each effect as is
func (p *Plan) Apply(effects ...Adjustment) *Plan {
	p.steps = append(p.steps, effects...)
	return p
}

// Steps returns the queued adjustments ordered by account ID. The sort is stable,
// so a reversal queued before an application on the same account stays first, and
// concurrent mutations acquire row locks in the same order.
func (p *Plan) Steps() []Adjustment {
	out := make([]Adjustment, len(p.steps))
	copy(out, p.steps)
	sort.SliceStable(out, func(i, j int) bool {
		return bytes.Compare(out[i].AccountID[:], out[j].AccountID[:]) < 0
	})
	return out
}

// Net folds the plan into one adjustment per account, in the same account order as Steps
func (p *Plan) Net() []Adjustment {
	var net []Adjustment
	for _, s := range p.Steps() {
		if n := len(net); n > 0 && net[n-1].AccountID == s.AccountID {
			net[n-1].Delta = net[n-1].Delta.Add(s.Delta)
			continue
		}
		net = append(net, s)
	}
	return net
}
