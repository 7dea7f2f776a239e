package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"placeval/pkg/core"

	"github.com/stretchr/testify/require"
)

func writeCorpus(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func collect(t *testing.T, ds core.Dataset) ([]core.Sample, error) {
	t.Helper()
	ch, errCh := ds.Samples(context.Background())
	var got []core.Sample
	for sample := range ch {
		got = append(got, sample)
	}
	for err := range errCh {
		if err != nil {
			return got, err
		}
	}
	return got, nil
}

func TestFileDatasetTSV(t *testing.T) {
	path := writeCorpus(t, "Where was Alice born?\tParis\nWhere was Bob born?\tLondon\n")

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, count)

	got, err := collect(t, ds)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "Where was Alice born?", got[0].Input)
	require.Equal(t, "Paris", got[0].Expected)
	require.Equal(t, "London", got[1].Expected)
}

func TestFileDatasetSecondFieldOnly(t *testing.T) {
	// Extra tab-delimited fields beyond the second are ignored.
	path := writeCorpus(t, "query\tMadrid\textra\tfields\n")

	got, err := collect(t, NewFileDataset(path))
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Madrid", got[0].Expected)
}

func TestFileDatasetMalformedRecord(t *testing.T) {
	path := writeCorpus(t, "query\tParis\nno tab here\n")

	_, err := collect(t, NewFileDataset(path))
	require.Error(t, err)
	require.Contains(t, err.Error(), "record 2")
	require.Contains(t, err.Error(), "missing tab separator")
}

func TestFileDatasetEmpty(t *testing.T) {
	path := writeCorpus(t, "")

	ds := NewFileDataset(path)
	count, err := ds.Len(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, count)

	got, err := collect(t, ds)
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSliceDataset(t *testing.T) {
	ds := NewSliceDataset([]core.Sample{
		{ID: "1", Input: "a", Expected: "x"},
	}, "")
	require.Equal(t, "slice", ds.Name())

	got, err := collect(t, ds)
	require.NoError(t, err)
	require.Len(t, got, 1)
}
