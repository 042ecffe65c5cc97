package status

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsValid(t *testing.T) {
	st := New()

	assert.True(t, st.IsValid())
	assert.Empty(t, st.Errors())
	assert.Empty(t, st.Message())
	assert.Empty(t, st.ErrorSummary())
}

func TestAddError(t *testing.T) {
	errBoom := errors.New("boom")

	testCases := []struct {
		name        string
		errs        []error
		expectValid bool
		expectCount int
	}{
		{
			name:        "nil error is ignored",
			errs:        []error{nil},
			expectValid: true,
			expectCount: 0,
		},
		{
			name:        "single error",
			errs:        []error{errBoom},
			expectValid: false,
			expectCount: 1,
		},
		{
			name:        "multiple errors keep order",
			errs:        []error{errBoom, errors.New("second")},
			expectValid: false,
			expectCount: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st := New()
			for _, err := range tc.errs {
				st.AddError(err)
			}

			assert.Equal(t, tc.expectValid, st.IsValid())
			assert.Len(t, st.Errors(), tc.expectCount)
		})
	}
}

func TestAddErrorf(t *testing.T) {
	st := New().AddErrorf("role %s not found", "Role99")

	require.False(t, st.IsValid())
	assert.Equal(t, "role Role99 not found", st.Errors()[0].Error())
}

func TestSetMessage(t *testing.T) {
	st := New().SetMessage("updated user %s", "alice")

	assert.True(t, st.IsValid())
	assert.Equal(t, "updated user alice", st.Message())
}

func TestCombine(t *testing.T) {
	testCases := []struct {
		name          string
		left          *Status
		right         *Status
		expectValid   bool
		expectMessage string
		expectCount   int
	}{
		{
			name:          "nil other is a no-op",
			left:          New().SetMessage("kept"),
			right:         nil,
			expectValid:   true,
			expectMessage: "kept",
		},
		{
			name:          "errors concatenate",
			left:          New().AddErrorf("first"),
			right:         New().AddErrorf("second"),
			expectValid:   false,
			expectCount:   2,
			expectMessage: "",
		},
		{
			name:          "latter message wins",
			left:          New().SetMessage("old"),
			right:         New().SetMessage("new"),
			expectValid:   true,
			expectMessage: "new",
		},
		{
			name:          "empty latter message keeps former",
			left:          New().SetMessage("old"),
			right:         New(),
			expectValid:   true,
			expectMessage: "old",
		},
		{
			name:          "validity is the logical AND",
			left:          New(),
			right:         New().AddErrorf("broken"),
			expectValid:   false,
			expectCount:   1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			combined := tc.left.Combine(tc.right)

			assert.Equal(t, tc.expectValid, combined.IsValid())
			assert.Equal(t, tc.expectMessage, combined.Message())
			assert.Len(t, combined.Errors(), tc.expectCount)
		})
	}
}

func TestErrorSummary(t *testing.T) {
	st := New().AddErrorf("first").AddErrorf("second")

	assert.Equal(t, "first; second", st.ErrorSummary())
}
