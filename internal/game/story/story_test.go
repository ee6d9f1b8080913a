package story

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow_FIFOEviction(t *testing.T) {
	t.Parallel()

	w := NewWindow(15)

	// Append more than the limit and verify only the newest 15 survive
	for i := 0; i < 20; i++ {
		w.Append(Entry{Role: RoleUser, Content: fmt.Sprintf("turn-%d", i)})
		assert.LessOrEqual(t, w.Len(), 15)
	}

	entries := w.Entries()
	assert.Len(t, entries, 15)
	// Oldest retained entry is turn-5, newest is turn-19
	assert.Equal(t, "turn-5", entries[0].Content)
	assert.Equal(t, "turn-19", entries[14].Content)
}

func TestWindow_NoLimit(t *testing.T) {
	t.Parallel()

	w := NewWindow(0)
	for i := 0; i < 30; i++ {
		w.Append(Entry{Role: RoleUser, Content: "x"})
	}
	assert.Equal(t, 30, w.Len())
}

func TestBuildContext_Ordering(t *testing.T) {
	t.Parallel()

	system := Entry{Role: RoleSystem, Content: SystemPrompt}
	characters := []Entry{
		CharacterIntro("Arya", "Rogue", "Elf"),
		CharacterIntro("Borin", "Fighter", "Dwarf"),
	}
	chat := NewWindow(15)
	for i := 0; i < 20; i++ {
		chat.Append(Entry{Role: RoleUser, Content: fmt.Sprintf("turn-%d", i)})
	}

	ctx := BuildContext(system, characters, chat)

	// System prompt is always element 0, never truncated away
	assert.Equal(t, RoleSystem, ctx[0].Role)
	assert.Equal(t, SystemPrompt, ctx[0].Content)

	// Character intros follow in full, regardless of window churn
	assert.Equal(t, characters[0], ctx[1])
	assert.Equal(t, characters[1], ctx[2])

	// Then the bounded chat window
	assert.Len(t, ctx, 1+2+15)
	assert.Equal(t, "turn-5", ctx[3].Content)
	assert.Equal(t, "turn-19", ctx[len(ctx)-1].Content)
}

func TestCharacterIntro_FieldsVerbatim(t *testing.T) {
	t.Parallel()

	entry := CharacterIntro("Raka", "Wizard", "Human")

	assert.Equal(t, RoleUser, entry.Role)
	assert.Equal(t, "[PLAYER INFO] Name: Raka, Class: Wizard, Race: Human.", entry.Content)
}

func TestCharacterIntro_NoValidation(t *testing.T) {
	t.Parallel()

	// Malformed fields are echoed as-is
	entry := CharacterIntro("", "<script>", "???")
	assert.Contains(t, entry.Content, "Name: ,")
	assert.Contains(t, entry.Content, "Class: <script>,")
	assert.Contains(t, entry.Content, "Race: ???.")
}
