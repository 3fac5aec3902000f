package commit

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

const (
	testAddress = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
	testSalt    = "0x1f2e3d4c5b6a79881f2e3d4c5b6a79881f2e3d4c5b6a79881f2e3d4c5b6a7988"
)

func TestHashAnswerKnownVectors(t *testing.T) {
	assert.Equal(t, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470", HashAnswer(""))
	assert.Equal(t, "0x4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45", HashAnswer("abc"))
}

func TestHashAnswerIsNotSHA3(t *testing.T) {
	std := sha3.Sum256([]byte("abc"))
	assert.NotEqual(t, "0x"+hex.EncodeToString(std[:]), HashAnswer("abc"))
}

func TestGenerateSalt(t *testing.T) {
	first, err := GenerateSalt()
	require.NoError(t, err)
	second, err := GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, first, 2*SaltSize)
	assert.False(t, strings.HasPrefix(first, "0x"))
	_, err = hex.DecodeString(first)
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestGenerateCommitHashTightPacking(t *testing.T) {
	got, err := GenerateCommitHash("treasure", testSalt, testAddress)
	require.NoError(t, err)

	saltBytes, _ := hex.DecodeString(strings.TrimPrefix(testSalt, "0x"))
	addrBytes, _ := hex.DecodeString(strings.TrimPrefix(testAddress, "0x"))
	packed := append([]byte("treasure"), saltBytes...)
	packed = append(packed, addrBytes...)

	h := sha3.NewLegacyKeccak256()
	h.Write(packed)
	assert.Equal(t, "0x"+hex.EncodeToString(h.Sum(nil)), got)
}

func TestGenerateCommitHashEmptyFieldsEqualAnswerHash(t *testing.T) {
	got, err := GenerateCommitHash("abc", "", "0x")
	require.NoError(t, err)
	assert.Equal(t, HashAnswer("abc"), got)
}

func TestGenerateCommitHashDeterministic(t *testing.T) {
	a, err := GenerateCommitHash("宝藏", testSalt, testAddress)
	require.NoError(t, err)
	b, err := GenerateCommitHash("宝藏", testSalt, testAddress)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	unprefixed, err := GenerateCommitHash("宝藏", strings.TrimPrefix(testSalt, "0x"), strings.TrimPrefix(testAddress, "0x"))
	require.NoError(t, err)
	assert.Equal(t, a, unprefixed)
}

func TestGenerateCommitHashAvalanche(t *testing.T) {
	base, err := GenerateCommitHash("treasure", testSalt, testAddress)
	require.NoError(t, err)

	changedAnswer, err := GenerateCommitHash("treasurf", testSalt, testAddress)
	require.NoError(t, err)
	changedSalt, err := GenerateCommitHash("treasure", testSalt[:len(testSalt)-1]+"9", testAddress)
	require.NoError(t, err)
	changedAddress, err := GenerateCommitHash("treasure", testSalt, testAddress[:len(testAddress)-1]+"9")
	require.NoError(t, err)

	assert.NotEqual(t, base, changedAnswer)
	assert.NotEqual(t, base, changedSalt)
	assert.NotEqual(t, base, changedAddress)
}

func TestGenerateCommitHashRejectsBadHex(t *testing.T) {
	_, err := GenerateCommitHash("a", "0xzz", testAddress)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "salt", verr.Field)

	_, err = GenerateCommitHash("a", testSalt, "0x123")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "address", verr.Field)
}

func TestValidateAddressFormat(t *testing.T) {
	cases := []struct {
		name    string
		address string
		want    bool
	}{
		{"checksummed", testAddress, true},
		{"lowercase", strings.ToLower(testAddress), true},
		{"zero", "0x" + strings.Repeat("0", 40), true},
		{"empty", "", false},
		{"missing prefix", strings.TrimPrefix(testAddress, "0x") + "00", false},
		{"too short", testAddress[:41], false},
		{"too long", testAddress + "0", false},
		{"non hex", "0x" + strings.Repeat("g", 40), false},
		{"prefix only", "0x", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidateAddressFormat(tc.address))
		})
	}
}
