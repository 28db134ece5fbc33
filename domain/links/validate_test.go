package links

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "brainpin/pkg/errors"
)

func strPtr(s string) *string {
	return &s
}

func TestValidateName(t *testing.T) {
	got, err := ValidateName("  Reading  ")
	require.NoError(t, err)
	assert.Equal(t, "Reading", got)

	_, err = ValidateName("   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = ValidateName(strings.Repeat("x", MaxNameLength+1))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	// Exactly at the limit is fine.
	_, err = ValidateName(strings.Repeat("x", MaxNameLength))
	assert.NoError(t, err)
}

func TestValidateDescription(t *testing.T) {
	got, err := ValidateDescription(strPtr("  something useful  "))
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "something useful", *got)

	got, err = ValidateDescription(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = ValidateDescription(strPtr("   "))
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = ValidateDescription(strPtr(strings.Repeat("x", MaxDescriptionLength+1)))
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestValidateLinkURL(t *testing.T) {
	got, err := ValidateLinkURL(" https://example.com/a?b=1 ")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a?b=1", got)

	got, err = ValidateLinkURL("tel:0049 151 234")
	require.NoError(t, err)
	assert.Equal(t, "tel:+49151234", got)

	_, err = ValidateLinkURL("ftp://example.com")
	require.Error(t, err)

	_, err = ValidateLinkURL("tel:+49+151")
	require.Error(t, err)

	_, err = ValidateLinkURL("")
	require.Error(t, err)
}

func TestValidateCategoryIDs(t *testing.T) {
	got, err := ValidateCategoryIDs([]string{" cat-1 ", "cat-2", "cat-1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"cat-1", "cat-2"}, got)

	_, err = ValidateCategoryIDs(nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))

	_, err = ValidateCategoryIDs([]string{""})
	require.Error(t, err)

	_, err = ValidateCategoryIDs([]string{SentinelCategoryID})
	require.Error(t, err)
}

func TestValidateSublinks(t *testing.T) {
	subs := []Sublink{
		{ID: "sln-1", Name: " Docs ", URL: "https://example.com/docs"},
		{ID: "sln-2", Name: "Phone", URL: "tel:0151 234"},
	}
	got, err := ValidateSublinks(subs)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Docs", got[0].Name)
	assert.Equal(t, "tel:+49151234", got[1].URL)

	_, err = ValidateSublinks([]Sublink{{ID: "", Name: "x", URL: "https://example.com"}})
	require.Error(t, err)

	_, err = ValidateSublinks([]Sublink{
		{ID: "dup", Name: "a", URL: "https://example.com"},
		{ID: "dup", Name: "b", URL: "https://example.com"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unique")
}

func TestValidateSublinks_SingleTelephone(t *testing.T) {
	_, err := ValidateSublinks([]Sublink{
		{ID: "sln-1", Name: "Phone A", URL: "tel:+49151234"},
		{ID: "sln-2", Name: "Phone B", URL: "tel:+49151235"},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "telephone")
}

func TestValidateLinkPayload(t *testing.T) {
	payload := LinkPayload{
		Name:        " News ",
		URL:         "https://example.com",
		CategoryIDs: []string{"cat-1", "cat-1"},
		Description: strPtr("  daily reads "),
	}

	got, err := ValidateLinkPayload(payload)
	require.NoError(t, err)
	assert.Equal(t, "News", got.Name)
	assert.Equal(t, []string{"cat-1"}, got.CategoryIDs)
	require.NotNil(t, got.Description)
	assert.Equal(t, "daily reads", *got.Description)
	assert.Empty(t, got.Sublinks)

	_, err = ValidateLinkPayload(LinkPayload{Name: "News", URL: "https://example.com"})
	require.Error(t, err, "missing categories must fail")
}
