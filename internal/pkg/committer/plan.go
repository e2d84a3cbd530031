package committer

import (
	"context"

	"cloud.google.com/go/spanner"
)

// Guard is a precondition read inside the commit transaction, before any
// mutation is buffered. A non-nil error aborts the commit.
type Guard func(ctx context.Context, tx *spanner.ReadWriteTransaction) error

// Plan collects the mutations of one command so they commit atomically.
// Nil mutations are ignored, which lets repositories return nil for "no change".
type Plan struct {
	guards    []Guard
	mutations []*spanner.Mutation
}

func NewPlan() *Plan {
	return &Plan{}
}

func (p *Plan) Add(ms ...*spanner.Mutation) {
	for _, m := range ms {
		if m != nil {
			p.mutations = append(p.mutations, m)
		}
	}
}

// Require adds a guard; nil guards are ignored.
func (p *Plan) Require(gs ...Guard) {
	for _, g := range gs {
		if g != nil {
			p.guards = append(p.guards, g)
		}
	}
}

func (p *Plan) Guards() []Guard {
	return p.guards
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
