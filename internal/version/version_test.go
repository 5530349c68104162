package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		strict  bool
		want    Version
		wantErr bool
	}{
		{name: "plain", raw: "1.5.0", want: Version{1, 5, 0}},
		{name: "multi digit", raw: "10.20.300", want: Version{10, 20, 300}},
		{name: "two components", raw: "1.2", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
		{name: "leading v", raw: "v1.2.3", wantErr: true},
		{name: "letters", raw: "a.b.c", wantErr: true},
		{name: "trailing text lenient", raw: "1.2.3abc", want: Version{1, 2, 3}},
		{name: "trailing text strict", raw: "1.2.3abc", strict: true, wantErr: true},
		{name: "prerelease strict", raw: "1.2.3-rc1", strict: true, wantErr: true},
		{name: "plain strict", raw: "0.12.31", strict: true, want: Version{0, 12, 31}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.raw, tt.strict)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidFormatMessageNamesShape(t *testing.T) {
	err := ValidateFormat("1.2", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NUMBER.NUMBER.NUMBER")
}

func TestSortUsesNumericOrder(t *testing.T) {
	versions := []Version{{1, 10, 0}, {1, 2, 0}, {0, 15, 4}, {1, 2, 10}, {1, 2, 9}}
	Sort(versions)

	assert.Equal(t, []Version{{0, 15, 4}, {1, 2, 0}, {1, 2, 9}, {1, 2, 10}, {1, 10, 0}}, versions)
	assert.Equal(t, 0, Compare(Version{1, 2, 3}, Version{1, 2, 3}))
	assert.Equal(t, 1, Compare(Version{2, 0, 0}, Version{1, 99, 99}))
}

func TestFindInIndex(t *testing.T) {
	body := `<ul>
<li><a href="/terraform/1.2.30/">terraform_1.2.30</a></li>
<li><a href="/terraform/1.5.0/">terraform_1.5.0</a></li>
<li><a href="/terraform/1.6.0-rc1/">terraform_1.6.0-rc1</a></li>
<li><a href="/terraform/11.2.4/">terraform_11.2.4</a></li>
</ul>`

	assert.True(t, FindInIndex(body, "1.5.0"))
	assert.True(t, FindInIndex(body, "1.2.30"))
	assert.True(t, FindInIndex(body, "1.6.0-rc1"))
	assert.False(t, FindInIndex(body, "1.2.3"))
	assert.False(t, FindInIndex(body, "1.6.0"))
	assert.False(t, FindInIndex(body, "1.2.4"))
	assert.False(t, FindInIndex(body, "2.0.0"))
}

func TestExtractAll(t *testing.T) {
	body := `terraform_1.5.0 terraform_1.2.30 terraform_1.5.0 terraform_1.6.0-rc1 terraform_0.9.11`

	got := ExtractAll(body)
	assert.Equal(t, []Version{{0, 9, 11}, {1, 2, 30}, {1, 5, 0}}, got)
}

func TestExtractAllDelimitedList(t *testing.T) {
	got := ExtractAll("1.2.3,1.2.4;1.2.5 1.2.6-rc1,1.2.7.8,v1.2.8")
	assert.Equal(t, []Version{{1, 2, 3}, {1, 2, 4}, {1, 2, 5}, {1, 2, 8}}, got)
}

func TestFindInIndexDelimitedList(t *testing.T) {
	body := "1.2.3,1.2.4,1.2.40"

	assert.True(t, FindInIndex(body, "1.2.3"))
	assert.True(t, FindInIndex(body, "1.2.4"))
	assert.True(t, FindInIndex(body, "1.2.40"))
	assert.False(t, FindInIndex(body, "2.3,1"))
	assert.False(t, FindInIndex(body, ""))
}

func TestValidateFormatAcceptsLargeComponents(t *testing.T) {
	require.NoError(t, ValidateFormat("99999999999999999999.0.0", false))
	require.NoError(t, ValidateFormat("99999999999999999999.0.0", true))

	_, err := Parse("99999999999999999999.0.0", false)
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestCompareRaw(t *testing.T) {
	assert.Equal(t, -1, CompareRaw("1.2.9", "1.2.10"))
	assert.Equal(t, 1, CompareRaw("99999999999999999999.0.0", "2.0.0"))
	assert.Equal(t, -1, CompareRaw("1.2.3", "1.2.3-beta"))
	assert.Equal(t, 0, CompareRaw("1.5.0", "1.5.0"))
}
