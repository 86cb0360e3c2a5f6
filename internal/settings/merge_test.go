package settings

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeHealsPartialDocumentFromDefaults(t *testing.T) {
	merged := Merge([]byte(`{"contact":{"email":"a@b.com"}}`))

	expected := Default()
	expected.Contact.Email = "a@b.com"

	assert.Equal(t, expected, merged)
}

func TestMergeEmptyOrCorruptDocumentYieldsDefaults(t *testing.T) {
	inputs := map[string][]byte{
		"empty":       nil,
		"not json":    []byte("{nope"),
		"wrong type":  []byte(`"just a string"`),
		"json number": []byte(`42`),
	}

	for name, raw := range inputs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, Default(), Merge(raw))
		})
	}
}

func TestMergeFallsBackPerFieldOnWrongShape(t *testing.T) {
	merged := Merge([]byte(`{
		"contact": {
			"addressLines": "not an array",
			"phone": "+1 555 0100"
		},
		"gallery": {
			"assetVersion": "seven",
			"customImages": {"nope": true}
		}
	}`))

	defaults := Default()

	assert.Equal(t, defaults.Contact.AddressLines, merged.Contact.AddressLines)
	assert.Equal(t, "+1 555 0100", merged.Contact.Phone)
	assert.Equal(t, 1, merged.Gallery.AssetVersion)
	assert.Equal(t, defaults.Gallery.CustomImages, merged.Gallery.CustomImages)
}

func TestMergeAcceptsLooselyTypedNumbers(t *testing.T) {
	merged := Merge([]byte(`{"gallery":{"assetVersion":"7","numbered":{"start":2.0,"end":"9"}}}`))

	assert.Equal(t, 7, merged.Gallery.AssetVersion)
	assert.Equal(t, 2, merged.Gallery.Numbered.Start)
	assert.Equal(t, 9, merged.Gallery.Numbered.End)
}

func TestMergeClampsAssetVersionToOne(t *testing.T) {
	merged := Merge([]byte(`{"gallery":{"assetVersion":0}}`))

	assert.Equal(t, 1, merged.Gallery.AssetVersion)
}

func TestMergeRejectsUnknownGalleryMode(t *testing.T) {
	merged := Merge([]byte(`{"gallery":{"mode":"carousel"}}`))

	assert.Equal(t, GalleryModeNumbered, merged.Gallery.Mode)

	merged = Merge([]byte(`{"gallery":{"mode":"custom"}}`))

	assert.Equal(t, GalleryModeCustom, merged.Gallery.Mode)
}

func TestMergeOverlaysSocialsByPlatform(t *testing.T) {
	merged := Merge([]byte(`{"socials":{"tiktok":"https://tiktok.com/@x"}}`))

	assert.Equal(t, "https://tiktok.com/@x", merged.Socials["tiktok"])
	assert.Equal(t, Default().Socials["instagram"], merged.Socials["instagram"])
}

func TestMergePromotionItems(t *testing.T) {
	merged := Merge([]byte(`{
		"promotions": {
			"enabled": true,
			"items": [{"id":"p1","title":"Spring offer"}]
		}
	}`))

	require.Len(t, merged.Promotions.Items, 1)
	assert.True(t, merged.Promotions.Enabled)
	assert.Equal(t, "Spring offer", merged.Promotions.Items[0].Title)
}

func TestMergeRoundTripsFullDocument(t *testing.T) {
	original := Default()
	original.Contact.Email = "round@trip.com"
	original.Gallery.AssetVersion = 12
	original.Gallery.Mode = GalleryModeCustom
	original.Gallery.CustomImages = []string{"https://cdn.example.com/a.png"}
	original.Gallery.Numbered.Order = []int{3, 1, 2}
	original.Promotions.Items = []Promotion{{ID: "p1", Title: "T"}}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	assert.Equal(t, original, Merge(raw))
}

func TestCloneIsDeep(t *testing.T) {
	original := Default()
	original.Gallery.CustomImages = []string{"a"}
	original.Gallery.Numbered.Order = []int{1}

	cloned := original.Clone()
	cloned.Contact.AddressLines[0] = "changed"
	cloned.Socials["instagram"] = "changed"
	cloned.Gallery.CustomImages[0] = "changed"
	cloned.Gallery.Numbered.Order[0] = 99

	assert.NotEqual(t, "changed", original.Contact.AddressLines[0])
	assert.NotEqual(t, "changed", original.Socials["instagram"])
	assert.Equal(t, "a", original.Gallery.CustomImages[0])
	assert.Equal(t, 1, original.Gallery.Numbered.Order[0])
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	first := Default()
	first.Contact.AddressLines[0] = "mutated"
	first.Socials["instagram"] = "mutated"

	second := Default()

	assert.NotEqual(t, "mutated", second.Contact.AddressLines[0])
	assert.NotEqual(t, "mutated", second.Socials["instagram"])
}
