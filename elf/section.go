package elf

import (
	"bytes"
	"fmt"

	"github.com/ianlancetaylor/demangle"
)

type FileAddress uint64

type Section interface {
	Header() SectionHeaderEntry

	BindSectionNameTable(sectionNames *StringTableSection) error
	Name() string

	RawContent() ([]byte, error)

	// See elf spec. Figure 1-12. sh_link and sh_info interpretation.
	BindStringTable(stringTable *StringTableSection) error
	BindSymbolTable(symbolTable *SymbolTableSection)
}

type BaseSection struct {
	SectionHeaderEntry

	sectionNameTable *StringTableSection
	name             string
}

func newBaseSection(header SectionHeaderEntry) BaseSection {
	return BaseSection{
		SectionHeaderEntry: header,
	}
}

func (base *BaseSection) Header() SectionHeaderEntry {
	return base.SectionHeaderEntry
}

func (base *BaseSection) Name() string {
	return base.name
}

func (base *BaseSection) BindSectionNameTable(
	sectionNames *StringTableSection,
) error {
	base.sectionNameTable = sectionNames
	name, ok := sectionNames.GetChecked(base.NameIndex, SectionNameLengthMaximum)
	if !ok {
		return newError(
			StringTooLong,
			"section name at index %d exceeds %d bytes",
			base.NameIndex,
			SectionNameLengthMaximum)
	}
	base.name = name
	return nil
}

func (BaseSection) RawContent() ([]byte, error) {
	return nil, fmt.Errorf("cannot get raw content")
}

func (BaseSection) BindStringTable(table *StringTableSection) error {
	return nil
}

func (BaseSection) BindSymbolTable(table *SymbolTableSection) {
}

type RawSection struct {
	BaseSection

	Content []byte
}

func newRawSection(header SectionHeaderEntry, buffer []byte) *RawSection {
	content := make([]byte, len(buffer))
	copy(content, buffer)

	return &RawSection{
		BaseSection: newBaseSection(header),
		Content:     content,
	}
}

func (section *RawSection) RawContent() ([]byte, error) {
	return section.Content, nil
}

type StringTableSection struct {
	BaseSection

	Content []byte
}

func NewStringTableSection(
	header SectionHeaderEntry,
	buffer []byte,
) *StringTableSection {
	content := make([]byte, len(buffer))
	copy(content, buffer)

	return &StringTableSection{
		BaseSection: newBaseSection(header),
		Content:     content,
	}
}

// GetChecked resolves the NUL-terminated string starting at index, failing
// (rather than truncating) when it is longer than maxLen bytes or never
// terminates within the table.
func (table *StringTableSection) GetChecked(index uint32, maxLen int) (string, bool) {
	if index >= uint32(len(table.Content)) {
		return "", false
	}

	chunk := table.Content[index:]
	if len(chunk) > maxLen {
		chunk = chunk[:maxLen+1]
	}

	end := bytes.IndexByte(chunk, 0)
	if end == -1 {
		return "", false
	}

	return string(chunk[:end]), true
}

func (table *StringTableSection) NumEntries() int {
	count := 0
	for _, b := range table.Content[1:] {
		if b == 0 {
			count += 1
		}
	}
	return count
}

type Symbol struct {
	SymbolEntry

	Parent        *SymbolTableSection
	Name          string
	DemangledName string // human readable c++ / rust name
}

func (symbol Symbol) PrettyName() string {
	if symbol.DemangledName != "" {
		return symbol.DemangledName
	}

	return symbol.Name
}

func (symbol Symbol) Type() SymbolType {
	return SymbolInfoToType(symbol.Info)
}

func (symbol Symbol) Binding() SymbolBinding {
	return SymbolInfoToBinding(symbol.Info)
}

func (symbol Symbol) AddressRange() (FileAddress, FileAddress, bool) {
	if symbol.Value == 0 ||
		symbol.NameIndex == 0 ||
		symbol.Type() == SymbolTypeTLSObject {

		return 0, 0, false
	}

	start := FileAddress(symbol.Value)
	end := FileAddress(symbol.Value + symbol.Size)
	return start, end, true
}

type SymbolTableSection struct {
	BaseSection

	Symbols []*Symbol

	stringTable *StringTableSection
}

func (table *SymbolTableSection) BindStringTable(names *StringTableSection) error {
	table.stringTable = names
	for i, symbol := range table.Symbols {
		name, ok := names.GetChecked(symbol.NameIndex, SymbolNameLengthMaximum)
		if !ok {
			return newError(
				StringTooLong,
				"symbol %d name at index %d exceeds %d bytes",
				i,
				symbol.NameIndex,
				SymbolNameLengthMaximum)
		}
		symbol.Name = name
		val, err := demangle.ToString(symbol.Name)
		if err == nil {
			symbol.DemangledName = val
		}
	}
	return nil
}

// SymbolName resolves the name of the idx'th symbol in the table, capped at
// SymbolNameLengthMaximum. It fails if the table's string table hasn't been
// bound (BindStringTable) or the name exceeds the cap.
func (table *SymbolTableSection) SymbolName(idx int) (string, error) {
	if idx < 0 || idx >= len(table.Symbols) {
		return "", newError(OutOfBounds, "symbol index %d out of bounds", idx)
	}
	if table.stringTable == nil {
		return "", newError(NoStringTable, "symbol table has no bound string table")
	}

	name, ok := table.stringTable.GetChecked(
		table.Symbols[idx].NameIndex,
		SymbolNameLengthMaximum)
	if !ok {
		return "", newError(
			StringTooLong,
			"symbol name at index %d exceeds %d bytes",
			idx,
			SymbolNameLengthMaximum)
	}
	return name, nil
}

func (table *SymbolTableSection) SymbolsByName(name string) []*Symbol {
	result := []*Symbol{}
	for _, symbol := range table.Symbols {
		if symbol.Name == name || symbol.DemangledName == name {
			result = append(result, symbol)
		}
	}
	return result
}

func (table *SymbolTableSection) SymbolAt(address FileAddress) *Symbol {
	for _, symbol := range table.Symbols {
		low, _, ok := symbol.AddressRange()
		if ok && low == address {
			return symbol
		}
	}

	return nil
}

func (table *SymbolTableSection) SymbolSpans(address FileAddress) *Symbol {
	for _, symbol := range table.Symbols {
		low, high, ok := symbol.AddressRange()
		if ok && low <= address && address < high {
			return symbol
		}
	}

	return nil
}

// RelocationSection holds a parsed SHT_REL section. sbpf images never
// carry SHT_RELA (addend-bearing) relocations; only the no-addend form is
// parsed into typed records.
type RelocationSection struct {
	BaseSection

	Relocations []Elf64Rel

	symbolTable *SymbolTableSection
}

func (section *RelocationSection) BindSymbolTable(table *SymbolTableSection) {
	section.symbolTable = table
}

// SymbolFor resolves the symbol a relocation refers to, if the relocation
// section's sh_link was bound to a symbol table.
func (section *RelocationSection) SymbolFor(rel Elf64Rel) (*Symbol, bool) {
	if section.symbolTable == nil {
		return nil, false
	}

	idx := int(rel.Symbol())
	if idx < 0 || idx >= len(section.symbolTable.Symbols) {
		return nil, false
	}

	return section.symbolTable.Symbols[idx], true
}

type NoteEntry struct {
	Name        string // name is usually human readable
	Description string // description has no standard format and may be unreadable
	Type        uint32
}

type NoteSection struct {
	BaseSection

	Entries []NoteEntry
}

func newNoteSection(
	header SectionHeaderEntry,
	entries []NoteEntry,
) *NoteSection {
	return &NoteSection{
		BaseSection: newBaseSection(header),
		Entries:     entries,
	}
}
