package uuid_test

import (
	"testing"

	"github.com/gofrs/uuid"
	"github.com/rangekit/pgrange"
	rangeuuid "github.com/rangekit/pgrange/ext/gofrs-uuid"
	"github.com/rangekit/pgrange/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext(t *testing.T) {
	tests := []struct {
		v    string
		want string
	}{
		{"00000000-0000-0000-0000-000000000000", "00000000-0000-0000-0000-000000000001"},
		{"00000000-0000-0000-0000-0000000000ff", "00000000-0000-0000-0000-000000000100"},
		{"0000000f-ffff-ffff-ffff-ffffffffffff", "00000010-0000-0000-0000-000000000000"},
		{"ffffffff-ffff-ffff-ffff-ffffffffffff", "00000000-0000-0000-0000-000000000000"},
	}

	for _, tt := range tests {
		got := rangeuuid.UUID.Next(uuid.FromStringOrNil(tt.v))
		assert.Equal(t, tt.want, got.String())
	}
}

func TestNormalization(t *testing.T) {
	r, err := pgrange.Parse[uuid.UUID](rangeuuid.UUID, "(00000000-0000-0000-0000-000000000001,00000000-0000-0000-0000-000000000009]")
	require.NoError(t, err)

	assert.Equal(t, "[00000000-0000-0000-0000-000000000002,00000000-0000-0000-0000-00000000000a)", r.Canonical().String())
	assert.False(t, r.Contains(uuid.FromStringOrNil("00000000-0000-0000-0000-000000000001")))
	assert.True(t, r.Contains(uuid.FromStringOrNil("00000000-0000-0000-0000-000000000009")))
}

func TestStepOverflow(t *testing.T) {
	_, err := pgrange.Parse[uuid.UUID](rangeuuid.UUID, "[,ffffffff-ffff-ffff-ffff-ffffffffffff]")
	assert.ErrorIs(t, err, pgrange.ErrStepOverflow)
}

func TestRegister(t *testing.T) {
	m := pgtype.NewMap()
	rangeuuid.Register(m, "uuidrange", 16400)

	typ, ok := m.TypeForOID(16400)
	require.True(t, ok)

	v, err := typ.Codec.DecodeValue(pgrange.TextFormatCode, []byte("[a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11,)"))
	require.NoError(t, err)

	buf, err := v.Encode(pgrange.BinaryFormatCode, nil)
	require.NoError(t, err)
	v2, err := typ.Codec.DecodeValue(pgrange.BinaryFormatCode, buf)
	require.NoError(t, err)
	assert.Equal(t, v.String(), v2.String())
}
