package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"plain":            {input: "1.2.3", want: "1.2.3"},
		"zero major":       {input: "0.1.0", want: "0.1.0"},
		"prerelease":       {input: "2.0.0-beta.1", want: "2.0.0-beta.1"},
		"prerelease+build": {input: "1.0.0-rc.1+build.5", want: "1.0.0-rc.1+build.5"},
		"empty":            {input: "", wantErr: true},
		"v prefix":         {input: "v1.2.3", wantErr: true},
		"two components":   {input: "1.2", wantErr: true},
		"one component":    {input: "1", wantErr: true},
		"four components":  {input: "1.2.3.4", wantErr: true},
		"letters":          {input: "1.x.0", wantErr: true},
		"short with pre":   {input: "1.2-rc.1", wantErr: true},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v, err := ParseVersion(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				var ve *ValidationError
				require.True(t, errors.As(err, &ve))
				assert.Equal(t, "version", ve.Field)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, v.String())
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"bare":           {input: "1.2.3", want: "1.2.3"},
		"lowercase v":    {input: "v1.2.3", want: "1.2.3"},
		"uppercase V":    {input: "V1.2.3", want: "1.2.3"},
		"surrounding ws": {input: "  v0.6.0\n", want: "0.6.0"},
		"empty":          {input: "", want: ""},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, NormalizeVersion(tt.input))
		})
	}
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := &ValidationError{Field: "version", Message: "required field is empty"}
	assert.Equal(t, "version: required field is empty", err.Error())
	assert.Equal(t, "bad input", (&ValidationError{Message: "bad input"}).Error())
}

func TestValidateVersion(t *testing.T) {
	t.Parallel()

	assert.NoError(t, ValidateVersion("0.1.0"))
	assert.NoError(t, ValidateVersion("2.0.0-beta.1"))
	assert.Error(t, ValidateVersion(""))
	assert.Error(t, ValidateVersion("1.x"))
	assert.Error(t, ValidateVersion("1.2"))
}
