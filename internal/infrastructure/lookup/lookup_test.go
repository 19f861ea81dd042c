package lookup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erp/salesnorm/internal/domain/marketplace"
)

const yamlTables = `
codes:
  - platform: shopee
    code: SP-001
    name: Jasmine Rice 5kg
  - platform: TIKTOK
    code: "1729384756"
    name: Fish Sauce 700ml
provinces:
  - name: กรุงเทพมหานคร
    aliases: [bangkok, bkk, กทม]
  - name: เชียงใหม่
    aliases: [chiang mai]
`

func TestLoad_YAML(t *testing.T) {
	tables, err := Load(strings.NewReader(yamlTables), "yaml")
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"SP-001": "Jasmine Rice 5kg"}, tables.CodeNamesFor(marketplace.PlatformShopee))
	assert.Equal(t, "Fish Sauce 700ml", tables.CodeNamesFor(marketplace.PlatformTikTok)["1729384756"])
	assert.Empty(t, tables.CodeNamesFor(marketplace.PlatformLazada))
	assert.NotNil(t, tables.CodeNamesFor(marketplace.PlatformLazada))

	assert.Equal(t, []string{"bangkok", "bkk", "กทม"}, tables.ProvinceAliases["กรุงเทพมหานคร"])
	assert.Equal(t, []string{"chiang mai"}, tables.ProvinceAliases["เชียงใหม่"])
}

func TestLoad_JSON(t *testing.T) {
	doc := `{"codes":[{"platform":"lazada","code":"LZ-9","name":"Soy Sauce"}],"provinces":[]}`

	tables, err := Load(strings.NewReader(doc), "JSON")
	require.NoError(t, err)
	assert.Equal(t, "Soy Sauce", tables.CodeNamesFor(marketplace.PlatformLazada)["LZ-9"])
	assert.Empty(t, tables.ProvinceAliases)
}

func TestLoadFile_TOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookups.toml")
	doc := `
[[codes]]
platform = "shopee"
code = "SP-002"
name = "Coconut Milk"

[[provinces]]
name = "ภูเก็ต"
aliases = ["phuket"]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	tables, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Coconut Milk", tables.CodeNamesFor(marketplace.PlatformShopee)["SP-002"])
	assert.Equal(t, []string{"phuket"}, tables.ProvinceAliases["ภูเก็ต"])
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestFileTables_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    File
		wantErr error
	}{
		{
			name:    "missing name",
			file:    File{Codes: []CodeEntry{{Platform: "shopee", Code: "A"}}},
			wantErr: ErrInvalidFile,
		},
		{
			name: "conflicting duplicate code",
			file: File{Codes: []CodeEntry{
				{Platform: "shopee", Code: "A", Name: "One"},
				{Platform: "shopee", Code: "A", Name: "Two"},
			}},
			wantErr: ErrDuplicateCode,
		},
		{
			name:    "unsupported platform",
			file:    File{Codes: []CodeEntry{{Platform: "amazon", Code: "A", Name: "One"}}},
			wantErr: marketplace.ErrUnsupportedPlatform,
		},
		{
			name:    "non-standard province",
			file:    File{Provinces: []ProvinceEntry{{Name: "Bangkok", Aliases: []string{"bkk"}}}},
			wantErr: ErrUnknownProvince,
		},
		{
			name:    "blank alias",
			file:    File{Provinces: []ProvinceEntry{{Name: "ภูเก็ต", Aliases: []string{""}}}},
			wantErr: ErrInvalidFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.file.Tables()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFileTables_SameCodeSameNameIsAccepted(t *testing.T) {
	f := File{Codes: []CodeEntry{
		{Platform: "shopee", Code: "A", Name: "One"},
		{Platform: "SHOPEE", Code: " A ", Name: "One"},
	}}

	tables, err := f.Tables()
	require.NoError(t, err)
	assert.Len(t, tables.CodeNamesFor(marketplace.PlatformShopee), 1)
}

func TestNilTables(t *testing.T) {
	var tables *Tables
	assert.NotNil(t, tables.CodeNamesFor(marketplace.PlatformShopee))
}
