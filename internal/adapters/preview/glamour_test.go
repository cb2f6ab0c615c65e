package preview

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer("notty", 40)

	out, err := r.Render("standup", "daily at **9**\n\n- blockers first")
	require.NoError(t, err)

	assert.Contains(t, out, "standup")
	assert.Contains(t, out, "9")
	assert.Contains(t, out, "blockers first")
}

func TestRenderer_NoLabel(t *testing.T) {
	out, err := NewRenderer("notty", 0).Render("", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "plain")
}

func TestNewRenderer_DefaultWidth(t *testing.T) {
	assert.Equal(t, 80, NewRenderer("notty", 0).width)
	assert.Equal(t, 40, NewRenderer("notty", 40).width)
}
