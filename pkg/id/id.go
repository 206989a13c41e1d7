package id

import (
	uuidutil "github.com/fox-one/pkg/uuid"
	"github.com/gofrs/uuid"
)

// namespace pins the derived address space of this deployment. All ledger
// addresses grow from this root, so no registry lookup is ever needed.
const namespace = "9a7b64e1-37d2-4b58-9f4e-1f53d6a8c402"

// Derive maps a purpose tag and optional owner chain to a deterministic,
// collision-resistant address. Same inputs always yield the same address.
func Derive(tag string, owners ...string) string {
	address := uuidutil.Modify(namespace, tag)
	for _, owner := range owners {
		address = uuidutil.Modify(address, owner)
	}

	return address
}

// GenTraceID new random trace id
func GenTraceID() string {
	return uuid.Must(uuid.NewV4()).String()
}
