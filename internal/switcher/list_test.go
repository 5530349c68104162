package switcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tfswitch/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListSortsAndMarksActive(t *testing.T) {
	cfg := testConfig(t)
	for _, raw := range []string{"1.10.0", "1.2.0", "0.15.4", "1.2.10"} {
		installVersion(t, cfg, raw)
	}
	// Not versions: skipped.
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InstallDir, "terraform-latest"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InstallDir, "terraform-1.9.0.partial"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(cfg.InstallDir, "packer"), nil, 0o644))

	st := state.New()
	st.Record("1.2.10", filepath.Join(cfg.InstallDir, "terraform-1.2.10"), "src", time.Now())
	a := New(cfg, nil, st)
	_, err := a.Switch(context.Background(), "1.2.10")
	require.NoError(t, err)

	got, err := a.List()
	require.NoError(t, err)

	var versions []string
	for _, v := range got {
		versions = append(versions, v.Version)
	}
	assert.Equal(t, []string{"0.15.4", "1.2.0", "1.2.10", "1.10.0"}, versions)
	for _, v := range got {
		assert.Equal(t, v.Version == "1.2.10", v.Active, v.Version)
		assert.Equal(t, v.Version == "1.2.10", v.Managed, v.Version)
	}
}

func TestListMissingInstallDir(t *testing.T) {
	cfg := testConfig(t)
	cfg.InstallDir = filepath.Join(cfg.InstallDir, "absent")

	got, err := New(cfg, nil, nil).List()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestCurrent(t *testing.T) {
	cfg := testConfig(t)
	a := New(cfg, nil, nil)

	_, err := a.Current()
	require.ErrorIs(t, err, ErrNoActiveVersion)

	path := installVersion(t, cfg, "1.5.0")
	_, err = a.Switch(context.Background(), "1.5.0")
	require.NoError(t, err)

	cur, err := a.Current()
	require.NoError(t, err)
	assert.Equal(t, "1.5.0", cur.Version)
	assert.Equal(t, path, cur.Path)
}

func TestCurrentOutsideInstallDir(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.Symlink("/opt/terraform/bin/terraform", cfg.LinkPath))

	_, err := New(cfg, nil, nil).Current()
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoActiveVersion)
}

func TestLargeVersionComponents(t *testing.T) {
	cfg := testConfig(t)
	installVersion(t, cfg, "1.5.0")
	huge := installVersion(t, cfg, "99999999999999999999.0.0")
	a := New(cfg, nil, nil)

	res, err := a.Switch(context.Background(), "99999999999999999999.0.0")
	require.NoError(t, err)
	assert.Equal(t, huge, linkTarget(t, cfg))
	assert.Equal(t, huge, res.Path)

	got, err := a.List()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1.5.0", got[0].Version)
	assert.Equal(t, "99999999999999999999.0.0", got[1].Version)
	assert.True(t, got[1].Active)
}
