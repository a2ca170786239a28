package onboarding

import (
	"testing"

	"instructorhub/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docs(sides ...types.DocumentSide) []*types.Document {
	out := make([]*types.Document, 0, len(sides))
	for _, side := range sides {
		out = append(out, &types.Document{Side: side})
	}
	return out
}

func TestValidatorCanAdd(t *testing.T) {
	v := NewValidator(nil)

	tests := []struct {
		name     string
		existing []*types.Document
		side     types.DocumentSide
		wantErr  bool
	}{
		{name: "first single", existing: nil, side: types.DocumentSideSingle},
		{name: "first front", existing: nil, side: types.DocumentSideFront},
		{name: "back joins front", existing: docs(types.DocumentSideFront), side: types.DocumentSideBack},
		{name: "front joins back", existing: docs(types.DocumentSideBack), side: types.DocumentSideFront},
		{name: "duplicate single", existing: docs(types.DocumentSideSingle), side: types.DocumentSideSingle, wantErr: true},
		{name: "duplicate front", existing: docs(types.DocumentSideFront), side: types.DocumentSideFront, wantErr: true},
		{name: "front after single", existing: docs(types.DocumentSideSingle), side: types.DocumentSideFront, wantErr: true},
		{name: "back after single", existing: docs(types.DocumentSideSingle), side: types.DocumentSideBack, wantErr: true},
		{name: "single after front", existing: docs(types.DocumentSideFront), side: types.DocumentSideSingle, wantErr: true},
		{name: "single after front and back", existing: docs(types.DocumentSideFront, types.DocumentSideBack), side: types.DocumentSideSingle, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.CanAdd(tt.existing, tt.side)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, types.ErrorKindConflict, types.KindOf(err))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestValidatorComplete(t *testing.T) {
	v := NewValidator(nil)

	assert.False(t, v.Complete(nil))
	assert.True(t, v.Complete(docs(types.DocumentSideSingle)))
	assert.False(t, v.Complete(docs(types.DocumentSideFront)))
	assert.False(t, v.Complete(docs(types.DocumentSideBack)))
	assert.True(t, v.Complete(docs(types.DocumentSideFront, types.DocumentSideBack)))
}

func TestValidatorMissingPurposes(t *testing.T) {
	v := NewValidator(nil)

	t.Run("nothing uploaded", func(t *testing.T) {
		missing := v.MissingPurposes(nil)
		assert.Equal(t, DefaultRequiredPurposes(), missing)
	})

	t.Run("half-complete license is still missing", func(t *testing.T) {
		uploaded := []*types.Document{
			{Purpose: types.DocumentPurposeIdentification, Side: types.DocumentSideSingle},
			{Purpose: types.DocumentPurposeInstructorLicense, Side: types.DocumentSideFront},
			{Purpose: types.DocumentPurposeProofOfResidency, Side: types.DocumentSideSingle},
		}
		missing := v.MissingPurposes(uploaded)
		assert.Equal(t, []types.DocumentPurpose{types.DocumentPurposeInstructorLicense}, missing)
	})

	t.Run("all complete", func(t *testing.T) {
		uploaded := []*types.Document{
			{Purpose: types.DocumentPurposeIdentification, Side: types.DocumentSideSingle},
			{Purpose: types.DocumentPurposeInstructorLicense, Side: types.DocumentSideFront},
			{Purpose: types.DocumentPurposeInstructorLicense, Side: types.DocumentSideBack},
			{Purpose: types.DocumentPurposeProofOfResidency, Side: types.DocumentSideSingle},
		}
		assert.Empty(t, v.MissingPurposes(uploaded))
	})
}

func TestParseEnums(t *testing.T) {
	_, err := ParseSide("FRONT")
	require.NoError(t, err)
	_, err = ParseSide("front")
	assert.Equal(t, types.ErrorKindValidation, types.KindOf(err))

	_, err = ParsePurpose("INSTRUCTOR_LICENSE")
	require.NoError(t, err)
	_, err = ParsePurpose("DRIVERS_LICENSE")
	assert.Equal(t, types.ErrorKindValidation, types.KindOf(err))

	_, err = ParseStatus("IN_REVIEW")
	require.NoError(t, err)
	_, err = ParseStatus("DONE")
	assert.Equal(t, types.ErrorKindValidation, types.KindOf(err))

	_, err = ParseRejectionKind("PERMANENT")
	require.NoError(t, err)
	_, err = ParseRejectionKind("SOFT")
	assert.Equal(t, types.ErrorKindValidation, types.KindOf(err))
}
