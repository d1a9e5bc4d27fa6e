package sequence

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/retail-ledger-engine/internal/domain/shared"
)

// Namespace is the literal prefix of a human-readable identifier
type Namespace string

const (
	NamespaceBankAccount Namespace = "ACC"
	NamespaceSwap        Namespace = "SWP"
	NamespaceOrder       Namespace = "TO"
)

// Namespaces lists every namespace the engine issues identifiers for
var Namespaces = []Namespace{NamespaceBankAccount, NamespaceSwap, NamespaceOrder}

// ParseNamespace accepts a known namespace in any letter case
func ParseNamespace(s string) (Namespace, error) {
	ns := Namespace(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range Namespaces {
		if ns == known {
			return ns, nil
		}
	}
	return "", shared.Invalid("namespace", "unknown namespace %q", s)
}

// Format renders n as NS-0001. Values beyond four digits are printed in full.
func Format(ns Namespace, n int64) string {
	return fmt.Sprintf("%s-%04d", ns, n)
}

// ParseSuffix returns the number after the last '-' of id
func ParseSuffix(id string) (int64, error) {
	i := strings.LastIndex(id, "-")
	if i < 0 || i == len(id)-1 {
		return 0, shared.Invalid("id", "%q has no numeric suffix", id)
	}
	n, err := strconv.ParseInt(id[i+1:], 10, 64)
	if err != nil || n < 0 {
		return 0, shared.Invalid("id", "%q has no numeric suffix", id)
	}
	return n, nil
}

// Repository is an atomic counter per namespace
type Repository interface {
	// Next increments the namespace counter and returns the new value; the first call returns 1
	Next(ctx context.Context, ns Namespace) (int64, error)
	// Sync raises the counter to at least floor and never lowers it
	Sync(ctx context.Context, ns Namespace, floor int64) error
	WithTx(tx pgx.Tx) Repository
}
