package elf

import (
	"testing"

	"github.com/pattyshack/gt/testing/expect"
	"github.com/pattyshack/gt/testing/suite"
)

type NamesSuite struct{}

func TestNames(t *testing.T) {
	suite.RunTests(t, &NamesSuite{})
}

func (NamesSuite) TestSectionNameAtResolvesBoundedName(t *testing.T) {
	// SectionNameAt resolves through the section named ".shstrtab", so the
	// table names itself at index 7, right after ".text".
	shstrtab := NewStringTableSection(
		SectionHeaderEntry{NameIndex: 7, SectionType: SectionTypeStringTable},
		[]byte("\x00.text\x00.shstrtab\x00"))

	text := newRawSection(SectionHeaderEntry{NameIndex: 1}, nil)
	err := text.BindSectionNameTable(shstrtab)
	expect.Nil(t, err)
	err = shstrtab.BindSectionNameTable(shstrtab)
	expect.Nil(t, err)

	file := &File{Sections: []Section{text, shstrtab}}

	name, err := file.SectionNameAt(0)
	expect.Nil(t, err)
	expect.Equal(t, ".text", name)
}

func (NamesSuite) TestBindSectionNameTableRejectsNameLongerThanSixteenBytes(t *testing.T) {
	shstrtab := NewStringTableSection(
		SectionHeaderEntry{SectionType: SectionTypeStringTable},
		[]byte("\x00this_name_is_longer_than_sixteen_bytes\x00"))

	section := newRawSection(SectionHeaderEntry{NameIndex: 1}, nil)
	err := section.BindSectionNameTable(shstrtab)
	expect.NotNil(t, err)

	kind, ok := KindOf(err)
	expect.True(t, ok)
	expect.Equal(t, StringTooLong, kind)
}

// buildNamedFile assembles a minimal File with a bound .shstrtab and
// .strtab, used to exercise File.SymbolName/DynamicSymbolName without
// going through a full ParseBytes round trip.
func buildNamedFile(t *testing.T, stringTableSectionName string) (*File, *StringTableSection) {
	// ".shstrtab" starts at index 1, the named string table's own name
	// starts right after its NUL terminator.
	shstrtabContent := append([]byte("\x00.shstrtab\x00"), []byte(stringTableSectionName+"\x00")...)
	namedTableNameIndex := uint32(len("\x00.shstrtab\x00"))

	shstrtab := NewStringTableSection(
		SectionHeaderEntry{NameIndex: 1, SectionType: SectionTypeStringTable},
		shstrtabContent)

	namedTable := NewStringTableSection(
		SectionHeaderEntry{NameIndex: namedTableNameIndex, SectionType: SectionTypeStringTable},
		[]byte("\x00main\x00"))

	err := shstrtab.BindSectionNameTable(shstrtab)
	expect.Nil(t, err)
	err = namedTable.BindSectionNameTable(shstrtab)
	expect.Nil(t, err)

	return &File{Sections: []Section{shstrtab, namedTable}}, namedTable
}

func (NamesSuite) TestSymbolNameResolvesAgainstStrtab(t *testing.T) {
	file, _ := buildNamedFile(t, StringTableName)

	name, err := file.SymbolName(1)
	expect.Nil(t, err)
	expect.Equal(t, "main", name)
}

func (NamesSuite) TestDynamicSymbolNameResolvesAgainstDynstr(t *testing.T) {
	file, _ := buildNamedFile(t, DynamicStringTableName)

	name, err := file.DynamicSymbolName(1)
	expect.Nil(t, err)
	expect.Equal(t, "main", name)
}

func (NamesSuite) TestSymbolNameErrorsWithoutStrtab(t *testing.T) {
	file := &File{}

	_, err := file.SymbolName(1)
	expect.NotNil(t, err)

	kind, ok := KindOf(err)
	expect.True(t, ok)
	expect.Equal(t, NoStringTable, kind)
}
