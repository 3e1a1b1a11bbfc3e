package git

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const editMsgComments = "# Please enter the commit message for your changes.\n# On branch main\n"

func TestSplitComments(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		body     string
		comments string
	}{
		{name: "empty", content: "", body: "", comments: ""},
		{name: "no comments", content: "fix: bug\n", body: "fix: bug\n", comments: ""},
		{name: "git template", content: "fix: bug\n\n" + editMsgComments, body: "fix: bug\n\n", comments: editMsgComments},
		{name: "only comments", content: editMsgComments, body: "", comments: editMsgComments},
		{name: "comment in the middle stays", content: "fix\n# note\nmore\n", body: "fix\n# note\nmore\n", comments: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, comments := splitComments(tt.content)
			assert.Equal(t, tt.body, body)
			assert.Equal(t, tt.comments, comments)
		})
	}
}

func TestMessageFile_SetMessageKeepsComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	require.NoError(t, os.WriteFile(path, []byte("fix: bug\n\n"+editMsgComments), 0644))

	msg, err := ReadMessageFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, msg.Path())
	assert.Equal(t, "fix: bug\n\n", msg.Message())

	require.NoError(t, msg.SetMessage("fix: bug [wip]"))
	assert.Equal(t, "fix: bug [wip]", msg.Message())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "fix: bug [wip]\n\n"+editMsgComments, string(content))

	require.NoError(t, msg.Clear())
	assert.Empty(t, msg.Message())
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, editMsgComments, string(content))
}

func TestReadMessageFile_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MSG")
	msg, err := ReadMessageFile(path)
	require.NoError(t, err)
	assert.Empty(t, msg.Message())

	require.NoError(t, msg.SetMessage("[skip ci]"))
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[skip ci]\n", string(content))
}

func TestReadMessageFile_Unreadable(t *testing.T) {
	_, err := ReadMessageFile(t.TempDir())
	assert.Error(t, err)
}
