package mem_test

import (
	"testing"

	"github.com/arlowright/threadforth/internal/mem"
	"github.com/stretchr/testify/require"
)

func Test_Bytes_paging(t *testing.T) {
	var m mem.Bytes
	m.PageSize = 4

	val, err := m.LoadByte(0)
	require.NoError(t, err)
	require.Equal(t, byte(0), val)
	require.Equal(t, uint(0), m.Size())

	require.NoError(t, m.StorByte(0, 9))
	val, err = m.LoadByte(0)
	require.NoError(t, err)
	require.Equal(t, byte(9), val)

	require.NoError(t, m.Stor(0x9, 1, 2, 3, 4, 5, 6))
	buf := make([]byte, 12)
	require.NoError(t, m.LoadInto(6, buf))
	require.Equal(t, []byte{
		0, 0,
		0, 1, 2, 3,
		4, 5, 6, 0,
		0, 0,
	}, buf)
}

func Test_Bytes_cells(t *testing.T) {
	var m mem.Bytes
	m.PageSize = 64

	require.NoError(t, m.StorCell(8, -1, 8))
	v, err := m.LoadCell(8, 8)
	require.NoError(t, err)
	require.Equal(t, int64(-1), v)

	require.NoError(t, m.StorCell(16, 42, 8))
	v, err = m.LoadCell(16, 8)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)

	// writing a cell must not clobber adjacent cells
	v, err = m.LoadCell(8, 8)
	require.NoError(t, err)
	require.Equal(t, int64(-1), v)
}

func Test_Bytes_limit(t *testing.T) {
	var m mem.Bytes
	m.PageSize = 16
	m.Limit = 20

	require.NoError(t, m.StorByte(19, 1))
	err := m.StorByte(21, 1)
	require.Error(t, err)
	var lim mem.LimitError
	require.ErrorAs(t, err, &lim)
}
