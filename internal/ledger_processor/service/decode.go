package service

import (
	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/command"
)

type revision[F any] struct {
	id     uuid.UUID
	fields F
}

// withFields decodes a create payload, converts it to engine fields and runs fn
func withFields[P, F any](cmd *command.Command, convert func(P) (F, error), fn func(F) error) error {
	p, err := command.DecodePayload[P](cmd)
	if err != nil {
		return err
	}
	fields, err := convert(*p)
	if err != nil {
		return err
	}
	return fn(fields)
}

func withRevision[P, F any](cmd *command.Command, convert func(P) (F, error), fn func(revision[F]) error) error {
	p, err := command.DecodePayload[command.Revision[P]](cmd)
	if err != nil {
		return err
	}
	fields, err := convert(p.Entry)
	if err != nil {
		return err
	}
	return fn(revision[F]{id: p.ID, fields: fields})
}

func withRef(cmd *command.Command, fn func(*command.Ref) error) error {
	ref, err := command.DecodePayload[command.Ref](cmd)
	if err != nil {
		return err
	}
	return fn(ref)
}
