package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/retail-ledger-engine/internal/domain/sequence"
)

// NextIdentifier issues the next identifier of namespace, e.g. TO-0042 for tailoring orders.
// The namespace is matched case-insensitively.
func (e *Engine) NextIdentifier(ctx context.Context, namespace sequence.Namespace) (string, error) {
	ns, err := sequence.ParseNamespace(string(namespace))
	if err != nil {
		return "", err
	}

	var id string
	err = e.mutate(ctx, "next identifier", uuid.Nil, func(s *scope) error {
		n, err := s.repos.Sequences.Next(s.ctx, ns)
		if err != nil {
			return fmt.Errorf("failed to issue %s identifier: %w", ns, err)
		}
		id = sequence.Format(ns, n)
		return nil
	})
	if err != nil {
		return "", err
	}
	return id, nil
}

// SyncSequences raises the ACC and SWP counters to the suffixes of the latest stored
// identifiers, so that counters seeded after existing rows never reissue one. TO has
// no local source and is left as is.
func (e *Engine) SyncSequences(ctx context.Context) error {
	return e.mutate(ctx, "sync sequences", uuid.Nil, func(s *scope) error {
		latestAccount, err := s.repos.BankAccounts.LatestAccountNumber(s.ctx)
		if err != nil {
			return fmt.Errorf("failed to read latest account number: %w", err)
		}
		if err := s.syncFrom(sequence.NamespaceBankAccount, latestAccount); err != nil {
			return err
		}

		latestSwap, err := s.repos.Swaps.LatestSwapID(s.ctx)
		if err != nil {
			return fmt.Errorf("failed to read latest swap id: %w", err)
		}
		return s.syncFrom(sequence.NamespaceSwap, latestSwap)
	})
}

func (s *scope) syncFrom(ns sequence.Namespace, latest string) error {
	if latest == "" {
		return nil
	}
	floor, err := sequence.ParseSuffix(latest)
	if err != nil {
		s.logger.Warn("Skipping sequence sync for unparseable identifier", "namespace", string(ns), "identifier", latest)
		return nil
	}
	if err := s.repos.Sequences.Sync(s.ctx, ns, floor); err != nil {
		return fmt.Errorf("failed to sync %s sequence: %w", ns, err)
	}
	s.logger.Info("Sequence synced", "namespace", string(ns), "floor", floor)
	return nil
}
