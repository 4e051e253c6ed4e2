package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericFieldsAcceptNumbersAndStrings(t *testing.T) {
	var body struct {
		Category   CategoryID `json:"category"`
		Difficulty Difficulty `json:"difficulty"`
	}

	for _, payload := range []string{
		`{"category": 5, "difficulty": 3}`,
		`{"category": "5", "difficulty": "3"}`,
		`{"category": " 5 ", "difficulty": "3 "}`,
	} {
		require.NoError(t, json.Unmarshal([]byte(payload), &body), payload)
		assert.Equal(t, CategoryID(5), body.Category, payload)
		assert.Equal(t, Difficulty(3), body.Difficulty, payload)
	}
}

func TestNumericFieldsRejectNonNumbers(t *testing.T) {
	var d Difficulty
	assert.Error(t, json.Unmarshal([]byte(`"hard"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`2.5`), &d))

	var id CategoryID
	assert.Error(t, json.Unmarshal([]byte(`"two"`), &id))
}

func TestNumericFieldsIgnoreNull(t *testing.T) {
	d := Difficulty(4)
	require.NoError(t, json.Unmarshal([]byte(`null`), &d))
	assert.Equal(t, Difficulty(4), d)
}
