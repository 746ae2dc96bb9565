package dataset

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dygy/guitarset/internal/effects"
	apperrors "github.com/dygy/guitarset/internal/errors"
)

func TestConfirmAcceptsLiteralOne(t *testing.T) {
	var out bytes.Buffer
	err := confirm(strings.NewReader("1\n"), &out, 4, "/tmp/out")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "write 4 files")
}

func TestConfirmRejectsAnythingElse(t *testing.T) {
	for _, input := range []string{"y\n", "yes\n", "11\n", "\n", ""} {
		var out bytes.Buffer
		err := confirm(strings.NewReader(input), &out, 4, "/tmp/out")
		assert.ErrorIs(t, err, apperrors.ErrUserAbort, "input %q", input)
	}
}

func TestFilterActiveDropsInactiveAndUnknown(t *testing.T) {
	specs := map[string]effects.Spec{
		"overdrive": {"gain_db": {State: "constant", Default: true}},
		"reverb":    {},
		"tremolo":   {},
	}

	// unknown active names are filtered too: validation never gates the
	// run, the active list alone decides
	got := filterActive(specs, []string{"overdrive", "reverb", "wubwub"})

	assert.Len(t, got, 2)
	assert.Contains(t, got, "overdrive")
	assert.Contains(t, got, "reverb")
	assert.NotContains(t, got, "tremolo")
}
