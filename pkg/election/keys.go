package election

import (
	"fmt"
	"strings"
)

// ConstituencyKey builds the canonical constituency identifier shared by all
// sources. The official feed and the registry feed disagree on internal
// constituency IDs; the only key both carry is the province name plus the
// constituency number, so that pair is the join key. Whitespace inside the
// province name is removed to survive the sources' inconsistent spacing.
func ConstituencyKey(province string, consNo int) string {
	return fmt.Sprintf("%s_%d", strings.Join(strings.Fields(province), ""), consNo)
}
