package optimistic

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// NewTempID generates a client-side placeholder id for an entity that the
// server has not confirmed yet. The timestamp keeps ids roughly sortable;
// the uuid fragment keeps two sends in the same nanosecond distinct.
func NewTempID() string {
	return fmt.Sprintf("temp-%d-%s", time.Now().UnixNano(), uuid.NewString()[:8])
}

// IsTempID reports whether id is a client-generated placeholder
func IsTempID(id string) bool {
	return strings.HasPrefix(id, "temp-")
}
