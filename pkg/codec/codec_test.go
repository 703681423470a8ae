package codec

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type order struct {
	ID    string
	Items []string
	Total int
}

func TestCodecs_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, name := range []string{NameJSON, NameCBOR, NameGob} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := ByName(name)
			require.NoError(t, err)
			require.Equal(t, name, c.Name())

			in := order{ID: "o-1", Items: []string{"a", "b"}, Total: 42}
			var buf bytes.Buffer
			require.NoError(t, c.Encode(&buf, in))

			var out order
			require.NoError(t, c.Decode(buf.Bytes(), &out))
			require.Equal(t, in, out)
		})
	}
}

func TestCodecs_Duration(t *testing.T) {
	t.Parallel()

	for _, name := range []string{NameJSON, NameCBOR, NameGob} {
		c, err := ByName(name)
		require.NoError(t, err)

		var buf bytes.Buffer
		require.NoError(t, c.Encode(&buf, 1500*time.Millisecond))

		var d time.Duration
		require.NoError(t, c.Decode(buf.Bytes(), &d), name)
		require.Equal(t, 1500*time.Millisecond, d, name)
	}
}

func TestJSON_NoTrailingNewline(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, JSON{}.Encode(&buf, "x"))
	require.Equal(t, `"x"`, buf.String())
}

func TestCBOR_Deterministic(t *testing.T) {
	t.Parallel()

	c := NewCBOR()
	m := map[string]int{"b": 2, "a": 1, "c": 3}

	var first, second bytes.Buffer
	require.NoError(t, c.Encode(&first, m))
	require.NoError(t, c.Encode(&second, m))
	require.Equal(t, first.Bytes(), second.Bytes())
}

func TestByName(t *testing.T) {
	t.Parallel()

	c, err := ByName("")
	require.NoError(t, err)
	require.Equal(t, NameJSON, c.Name())

	_, err = ByName("xml")
	require.Error(t, err)
}
