package version

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), "timekeeper")
}

// TestLabels checks the metric label set.
func TestLabels(t *testing.T) {
	t.Parallel()

	labels := Labels()
	require.Equal(t, Short(), labels["version"])
	require.Equal(t, runtime.Version(), labels["go_version"])
	require.Len(t, labels, 4)
}

// TestAttachCobraVersionCommand runs the subcommand and inspects its output.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "timekeeper"}
	AttachCobraVersionCommand(root)

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetArgs([]string{"version", "--short"})

	require.NoError(t, root.Execute())
	require.Equal(t, Short()+"\n", out.String())
}
