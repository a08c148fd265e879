// Package idgen produces the human-readable order and transaction
// reference numbers printed on receipts. Numbers carry a sortable
// creation-time prefix plus random entropy; uniqueness is additionally
// enforced by database constraints.
package idgen

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/warungkit/warungpos/internal/clock"
	"go.uber.org/fx"
)

type Generator struct {
	clock   clock.Clock
	entropy io.Reader
}

func New(c clock.Clock) *Generator {
	return &Generator{
		clock:   c,
		entropy: ulid.DefaultEntropy(),
	}
}

// OrderNumber returns a receipt number such as ORD-20260901143500-9F4A21BC.
func (g *Generator) OrderNumber() string {
	now := g.clock.Now().UTC()
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102150405"), suffix)
}

// ReferenceNumber returns a payment reference such as TXN-01JX....
// ULIDs keep references sortable by creation time for provider reconciliation.
func (g *Generator) ReferenceNumber() string {
	now := g.clock.Now().UTC()
	return "TXN-" + ulid.MustNew(ulid.Timestamp(now), g.entropy).String()
}

// Module provides the shared number generator.
var Module = fx.Module("idgen",
	fx.Provide(New),
)
