package elf

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// Resources:
// https://refspecs.linuxfoundation.org/

type machineSpec struct {
	MachineArchitecture
	DataEncoding
}

var (
	// NOTE: sbpf images are always little endian BPF.
	supportedArchitecture = map[MachineArchitecture]machineSpec{
		MachineArchitectureBPF: {
			MachineArchitecture: MachineArchitectureBPF,
			DataEncoding:        DataEncodingTwosComplementLittleEndian,
		},
	}
)

// DynamicTable is the dense, last-write-wins view of a PT_DYNAMIC /
// SHT_DYNAMIC table. Only tags < DTNum are retained; parsing stops at the
// first DT_NULL entry.
type DynamicTable struct {
	values  [DTNum]uint64
	present [DTNum]bool
}

func (table *DynamicTable) set(tag DynTag, value uint64) {
	if tag < 0 || int(tag) >= DTNum {
		return
	}
	table.values[tag] = value
	table.present[tag] = true
}

// Get returns the value last written for tag, or ok=false if tag never
// appeared (or is out of range).
func (table *DynamicTable) Get(tag DynTag) (uint64, bool) {
	if tag < 0 || int(tag) >= DTNum {
		return 0, false
	}
	return table.values[tag], table.present[tag]
}

type File struct {
	ElfHeader
	Sections       []Section
	ProgramHeaders []ProgramHeaderEntry

	Dynamic            *DynamicTable
	DynamicRelocations []Elf64Rel
	DynamicSymbolTable *SymbolTableSection
}

func (file *File) GetSection(name string) (Section, bool) {
	for _, section := range file.Sections {
		if section.Name() == name {
			return section, true
		}
	}

	return nil, false
}

// GetStringInSection returns the NUL-terminated string starting at index
// within the named string table section, capped at maxLen bytes. It fails
// with StringTooLong rather than silently truncating.
func (file *File) GetStringInSection(
	sectionName string,
	index uint32,
	maxLen int,
) (
	string,
	error,
) {
	section, ok := file.GetSection(sectionName)
	if !ok {
		return "", newError(NoStringTable, "no %s section", sectionName)
	}

	table, ok := section.(*StringTableSection)
	if !ok {
		return "", newError(NoStringTable, "%s is not a string table", sectionName)
	}

	value, ok := table.GetChecked(index, maxLen)
	if !ok {
		return "", newError(
			StringTooLong,
			"string at index %d in %s exceeds %d bytes",
			index,
			sectionName,
			maxLen)
	}

	return value, nil
}

// SectionNameAt returns the section-header-table name at idx, capped at
// SectionNameLengthMaximum.
func (file *File) SectionNameAt(idx int) (string, error) {
	if idx < 0 || idx >= len(file.Sections) {
		return "", newError(OutOfBounds, "section index %d out of bounds", idx)
	}
	return file.GetStringInSection(
		SectionStringTableName,
		file.Sections[idx].Header().NameIndex,
		SectionNameLengthMaximum)
}

// SymbolName resolves a name-index (st_name) against the .strtab section,
// capped at SymbolNameLengthMaximum.
func (file *File) SymbolName(nameIndex uint32) (string, error) {
	return file.GetStringInSection(StringTableName, nameIndex, SymbolNameLengthMaximum)
}

// DynamicSymbolName resolves a name-index (st_name) against the .dynstr
// section, capped at SymbolNameLengthMaximum.
func (file *File) DynamicSymbolName(nameIndex uint32) (string, error) {
	return file.GetStringInSection(DynamicStringTableName, nameIndex, SymbolNameLengthMaximum)
}

// vaddrToOffset resolves a virtual address to a file offset using the
// PT_LOAD segment that contains it.
func (file *File) vaddrToOffset(vaddr uint64) (uint64, bool) {
	for _, phdr := range file.ProgramHeaders {
		if phdr.ProgramType != ProgramLoadable {
			continue
		}

		lo, hi := phdr.VMRange()
		if vaddr < lo || vaddr >= hi {
			continue
		}

		delta := vaddr - lo
		offset, ok := checkedAdd(phdr.ContentOffset, delta)
		if !ok {
			return 0, false
		}
		return offset, true
	}

	return 0, false
}

// sectionAtAddress is the section-header fallback used when no PT_LOAD
// segment covers a dynamic-table virtual address; it matches sh_addr
// exactly, mirroring the asymmetric bug-compatible behavior of the
// reference implementation this package was ported from.
func (file *File) sectionAtAddress(vaddr uint64) (SectionHeaderEntry, bool) {
	for _, section := range file.Sections {
		hdr := section.Header()
		if hdr.Address == vaddr && hdr.SectionType != SectionTypeNoSpace {
			return hdr, true
		}
	}
	return SectionHeaderEntry{}, false
}

type parser struct {
	content []byte

	binary.ByteOrder

	File
}

func Parse(reader io.Reader) (*File, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read elf file: %w", err)
	}

	return ParseBytes(content)
}

func ParseBytes(content []byte) (*File, error) {
	p := parser{
		content: content,
	}

	err := p.parse()
	if err != nil {
		return nil, err
	}

	return &p.File, nil
}

func (p *parser) parse() error {
	// NOTE: identifier (e_ident) has no endian-ness.  We must parse identifier
	// to determine the elf file's endian-ness (including the elf header).
	err := p.parseIdentifier()
	if err != nil {
		return err
	}

	err = p.parseHeader()
	if err != nil {
		return err
	}

	err = p.parseProgramHeaders()
	if err != nil {
		return err
	}

	err = p.parseSectionHeaders()
	if err != nil {
		return err
	}

	err = p.checkLayout()
	if err != nil {
		return err
	}

	err = p.parseDynamic()
	if err != nil {
		return err
	}

	err = p.parseDynamicRelocations()
	if err != nil {
		return err
	}

	err = p.resolveDynamicSymbolTable()
	if err != nil {
		return err
	}

	return nil
}

func (p *parser) parseIdentifier() error {
	if len(p.content) < ElfIdentifierSize {
		return newError(InvalidFileHeader, "content shorter than e_ident")
	}

	id := &Identifier{}

	n, err := binary.Decode(p.content, binary.NativeEndian, id)
	if err != nil {
		return wrapError(InvalidFileHeader, err, "failed to parse identifier")
	}

	if n != ElfIdentifierSize {
		panic("should never happen")
	}

	if !bytes.Equal(id.Magic[:], IdentifierMagic) {
		return newError(InvalidFileHeader, "invalid elf magic number")
	}

	if id.Class != Class64 {
		return newError(InvalidFileHeader, "unsupported elf class: %s", id.Class)
	}

	switch id.DataEncoding {
	case DataEncodingTwosComplementLittleEndian:
		p.ByteOrder = binary.LittleEndian
	case DataEncodingTwosComplementBigEndian:
		p.ByteOrder = binary.BigEndian
	default:
		return newError(
			InvalidFileHeader,
			"unsupported data encoding: %s",
			id.DataEncoding)
	}

	if id.IdentifierVersion != IdentifierVersion {
		return newError(
			InvalidFileHeader,
			"unsupported identifier version: %d",
			id.IdentifierVersion)
	}

	for _, padding := range id.Padding {
		if padding != 0 {
			return newError(InvalidFileHeader, "invalid identifier padding")
		}
	}

	return nil
}

func (p *parser) parseHeader() error {
	if len(p.content) < Elf64HeaderSize {
		return newError(InvalidFileHeader, "content shorter than ehdr")
	}

	n, err := binary.Decode(p.content, p.ByteOrder, &p.ElfHeader)
	if err != nil {
		return wrapError(InvalidFileHeader, err, "failed to parse header")
	}

	if n != Elf64HeaderSize {
		panic("should never happen")
	}

	spec, ok := supportedArchitecture[p.MachineArchitecture]
	if !ok {
		return newError(
			InvalidFileHeader,
			"unsupported machine architecture: %s",
			p.MachineArchitecture)
	}

	if spec.DataEncoding != p.DataEncoding {
		return newError(
			InvalidFileHeader,
			"invalid data encoding (%s) for machine architecture (%s)",
			p.DataEncoding,
			p.MachineArchitecture)
	}

	if p.FormatVersion != FormatVersion {
		return newError(
			InvalidFileHeader,
			"unsupported format version: %d",
			p.FormatVersion)
	}

	if p.ElfHeaderSize != Elf64HeaderSize {
		return newError(
			InvalidFileHeader,
			"unexpected elf64 header size: %d",
			p.ElfHeaderSize)
	}

	if p.NumProgramHeaderEntries > 0 &&
		p.ProgramHeaderEntrySize != Elf64ProgramHeaderEntrySize {

		return newError(
			InvalidFileHeader,
			"unexpected elf64 program header entry size: %d",
			p.ProgramHeaderEntrySize)
	}

	if p.NumSectionHeaderEntries > 0 &&
		p.SectionHeaderEntrySize != Elf64SectionHeaderEntrySize {

		return newError(
			InvalidFileHeader,
			"unexpected elf64 section header entry size: %d",
			p.SectionHeaderEntrySize)
	}

	// For simplicity, we'll disallow extended section header.  Most elf structs
	// (e.g., Elf64_Sym.st_shndx) don't support extended section indexing.
	//
	// https://docs.oracle.com/en/operating-systems/solaris/oracle-solaris/11.4/linkers-libraries/extended-section-header.html
	if p.SectionHeaderOffset > 0 && p.NumSectionHeaderEntries == 0 {
		return newError(InvalidFileHeader, "extended section header not supported")
	}

	return nil
}

// boundedSlice validates offset+size against len(p.content), using checked
// arithmetic so an attacker-controlled offset/size pair can never wrap
// around and pass a naive `offset+size <= len` check.
func (p *parser) boundedSlice(offset, size uint64) ([]byte, error) {
	end, ok := checkedAdd(offset, size)
	if !ok || end > uint64(len(p.content)) {
		return nil, newError(
			OutOfBounds,
			"range [%d, %d) exceeds content length %d",
			offset,
			end,
			len(p.content))
	}
	return p.content[offset:end], nil
}

func (p *parser) parseSectionHeaders() error {
	// The first section header entry is a mandatory SHT_NULL placeholder
	// (spec invariant 4); an empty table has nothing to satisfy it and is
	// rejected rather than treated as "no sections".
	if p.NumSectionHeaderEntries == 0 {
		return newError(InvalidSectionHeader, "missing mandatory SHT_NULL section header entry")
	}

	tableSize, ok := checkedMul(
		uint64(p.NumSectionHeaderEntries),
		Elf64SectionHeaderEntrySize)
	if !ok {
		return newError(InvalidSize, "section header table size overflows")
	}

	sectionHeaders, err := SliceFromBytes[SectionHeaderEntry](
		p.content,
		p.SectionHeaderOffset,
		tableSize)
	if err != nil {
		return wrapError(InvalidSectionHeader, err, "out of bound section header table")
	}

	if sectionHeaders[0].SectionType != SectionTypeNull {
		return newError(
			InvalidSectionHeader,
			"first section header entry has type %s, want %s",
			sectionHeaders[0].SectionType,
			SectionTypeNull)
	}

	var previousEnd uint64
	for i, header := range sectionHeaders {
		var sectionContent []byte
		if header.SectionType != SectionTypeNoSpace {
			content, err := p.boundedSlice(header.Offset, header.Size)
			if err != nil {
				return wrapError(
					InvalidSectionHeader,
					err,
					"out of bound section %d",
					i)
			}
			sectionContent = content

			if header.SectionType != SectionTypeNull && header.Offset < previousEnd {
				return newError(
					SectionNotInOrder,
					"section %d starts (%d) before the previous section ends (%d)",
					i,
					header.Offset,
					previousEnd)
			}
			previousEnd = header.Offset + header.Size
		}

		switch header.SectionType {
		case SectionTypeStringTable:
			p.Sections = append(
				p.Sections,
				NewStringTableSection(header, sectionContent))
		case SectionTypeSymbolTable,
			SectionTypeDynamicSymbolTable:

			table, err := p.parseSymbolTable(header, sectionContent)
			if err != nil {
				return err
			}
			p.Sections = append(p.Sections, table)
		case SectionTypeRelocationNoAddends:
			relocations, err := p.parseRelocationSection(header, sectionContent)
			if err != nil {
				return err
			}
			p.Sections = append(p.Sections, relocations)
		case SectionTypeNote:
			note, err := p.parseNote(header, sectionContent)
			if err != nil {
				return err
			}
			p.Sections = append(p.Sections, note)
		default:
			p.Sections = append(p.Sections, newRawSection(header, sectionContent))
		}
	}

	// Bind section names
	if p.SectionStringTableIndex != SectionIndexUndefined {
		idx := int(p.SectionStringTableIndex)
		if idx >= len(p.Sections) {
			return newError(
				InvalidSectionHeader,
				"section name index out of bound (%d >= %d)",
				idx,
				len(p.Sections))
		}

		table, ok := p.Sections[idx].(*StringTableSection)
		if !ok {
			return newError(
				NoSectionNameStringTable,
				"section name index does not point to a string table")
		}

		seen := map[string]bool{}
		for _, section := range p.Sections {
			if err := section.BindSectionNameTable(table); err != nil {
				return err
			}

			switch name := section.Name(); name {
			case ".symtab", StringTableName, DynamicStringTableName:
				if seen[name] {
					return newError(InvalidSectionHeader, "duplicate %s section", name)
				}
				seen[name] = true
			}
		}
	} else if len(p.Sections) > 1 {
		// Index 0 is always the mandatory SHT_NULL placeholder and never
		// needs a name; a file with only that entry has nothing to resolve.
		return newError(NoSectionNameStringTable, "no section name string table index")
	}

	// Bind sh_link section
	// See elf spec. Figure 1-12. sh_link and sh_info Interpretation.
	for _, section := range p.Sections {
		hdr := section.Header()

		if hdr.Link == 0 { // section 0 is always undefined
			continue
		}

		switch hdr.SectionType {
		case SectionTypeDynamic,
			SectionTypeSymbolTable,
			SectionTypeDynamicSymbolTable:
			if hdr.Link >= uint32(len(p.Sections)) {
				return newError(
					InvalidSectionHeader,
					"string table index out of bound (%d >= %d)",
					hdr.Link,
					len(p.Sections))
			}

			table, ok := p.Sections[hdr.Link].(*StringTableSection)
			if !ok {
				return newError(
					NoStringTable,
					"string table index does not point to a string table")
			}

			if err := section.BindStringTable(table); err != nil {
				return err
			}
		case SectionTypeSymbolHashTable,
			SectionTypeRelocationWithAddends,
			SectionTypeRelocationNoAddends:

			if hdr.Link >= uint32(len(p.Sections)) {
				return newError(
					InvalidSectionHeader,
					"symbol table index out of bound (%d >= %d)",
					hdr.Link,
					len(p.Sections))
			}

			table, ok := p.Sections[hdr.Link].(*SymbolTableSection)
			if !ok {
				return newError(
					InvalidSectionHeader,
					"symbol table index (%d) does not point to a symbol table (%s)",
					hdr.Link,
					p.Sections[hdr.Link].Name())
			}

			section.BindSymbolTable(table)
		}
	}

	return nil
}

func (p *parser) parseSymbolTable(
	header SectionHeaderEntry,
	content []byte,
) (
	*SymbolTableSection,
	error,
) {
	if len(content)%Elf64SymbolEntrySize != 0 {
		return nil, newError(InvalidSize, "invalid symbol table size (%d)", len(content))
	}

	numEntries := len(content) / Elf64SymbolEntrySize
	rawEntries, err := SliceFromBytes[SymbolEntry](content, 0, uint64(len(content)))
	if err != nil {
		return nil, wrapError(InvalidSectionHeader, err, "failed to parse symbol table")
	}

	table := &SymbolTableSection{
		BaseSection: newBaseSection(header),
	}

	symbols := make([]*Symbol, 0, numEntries)
	for _, entry := range rawEntries {
		symbols = append(
			symbols,
			&Symbol{
				SymbolEntry: entry,
				Parent:      table,
			})
	}

	table.Symbols = symbols
	return table, nil
}

func (p *parser) parseRelocationSection(
	header SectionHeaderEntry,
	content []byte,
) (
	*RelocationSection,
	error,
) {
	if len(content)%Elf64RelEntrySize != 0 {
		return nil, newError(
			InvalidRelocationTable,
			"invalid relocation table size (%d)",
			len(content))
	}

	entries, err := SliceFromBytes[Elf64Rel](content, 0, uint64(len(content)))
	if err != nil {
		return nil, wrapError(
			InvalidRelocationTable,
			err,
			"failed to parse relocation table")
	}

	return &RelocationSection{
		BaseSection: newBaseSection(header),
		Relocations: entries,
	}, nil
}

func (p *parser) parseProgramHeaders() error {
	if p.NumProgramHeaderEntries == 0 {
		return nil
	}

	tableSize, ok := checkedMul(
		uint64(p.NumProgramHeaderEntries),
		Elf64ProgramHeaderEntrySize)
	if !ok {
		return newError(InvalidSize, "program header table size overflows")
	}

	programHeaders, err := SliceFromBytes[ProgramHeaderEntry](
		p.content,
		p.ProgramHeaderOffset,
		tableSize)
	if err != nil {
		return wrapError(InvalidProgramHeader, err, "out of bound program header table")
	}

	var previousLoadEnd, previousLoadVaddr uint64
	for i, phdr := range programHeaders {
		end, ok := checkedAdd(phdr.ContentOffset, phdr.FileImageSize)
		if !ok || end > uint64(len(p.content)) {
			return newError(
				OutOfBounds,
				"program header %d range [%d, %d) exceeds content length %d",
				i,
				phdr.ContentOffset,
				end,
				len(p.content))
		}

		if phdr.MemoryImageSize < phdr.FileImageSize {
			return newError(
				InvalidSize,
				"program header %d memsz (%d) smaller than filesz (%d)",
				i,
				phdr.MemoryImageSize,
				phdr.FileImageSize)
		}

		if phdr.ProgramType == ProgramLoadable {
			if phdr.VirtualAddress < previousLoadVaddr {
				return newError(
					InvalidProgramHeader,
					"PT_LOAD segment %d vaddr (%#x) precedes the previous one (%#x)",
					i,
					phdr.VirtualAddress,
					previousLoadVaddr)
			}
			previousLoadVaddr = phdr.VirtualAddress

			if phdr.ContentOffset < previousLoadEnd {
				return newError(
					SectionNotInOrder,
					"PT_LOAD segment %d starts (%d) before the previous one ends (%d)",
					i,
					phdr.ContentOffset,
					previousLoadEnd)
			}
			previousLoadEnd = end
		}
	}

	p.ProgramHeaders = programHeaders
	return nil
}

// checkLayout enforces the non-overlap invariants between the file header,
// the program header table, and the section header table.
func (p *parser) checkLayout() error {
	ranges := [][2]uint64{
		{0, Elf64HeaderSize},
	}

	if p.NumProgramHeaderEntries > 0 {
		size := uint64(p.NumProgramHeaderEntries) * Elf64ProgramHeaderEntrySize
		ranges = append(ranges, [2]uint64{p.ProgramHeaderOffset, p.ProgramHeaderOffset + size})
	}

	if p.NumSectionHeaderEntries > 0 {
		size := uint64(p.NumSectionHeaderEntries) * Elf64SectionHeaderEntrySize
		ranges = append(ranges, [2]uint64{p.SectionHeaderOffset, p.SectionHeaderOffset + size})
	}

	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			if rangesOverlap(ranges[i], ranges[j]) {
				return newError(
					Overlap,
					"structural range [%d,%d) overlaps [%d,%d)",
					ranges[i][0], ranges[i][1],
					ranges[j][0], ranges[j][1])
			}
		}
	}

	return nil
}

func rangesOverlap(a, b [2]uint64) bool {
	return a[0] < b[1] && b[0] < a[1]
}

func (p *parser) parseNote(
	header SectionHeaderEntry,
	content []byte,
) (
	*NoteSection,
	error,
) {
	entries := []NoteEntry{}

	// NOTE: even though Elf64_Nhdr is defined, it looks like tools continue to
	// use Elf32_Nhdr / 4-byte aligned note entries.
	for len(content) > 0 {
		if len(content)%4 != 0 {
			return nil, newError(InvalidAlignment, "note section not 4-byte aligned")
		}

		noteHdr := &NoteHeader{}
		n, err := binary.Decode(content, p.ByteOrder, noteHdr)
		if err != nil {
			return nil, wrapError(InvalidSectionHeader, err, "failed to parse note header")
		}
		if n != NoteHeaderSize {
			panic("should never happen")
		}
		content = content[n:]

		if len(content) < int(noteHdr.NameSize) {
			return nil, newError(OutOfBounds, "not enough name bytes in note entry")
		}

		name := string(content[:noteHdr.NameSize])

		// make descStart 4 byte aligned.
		descStart := ((noteHdr.NameSize + 3) / 4) * 4
		if int(descStart) > len(content) {
			return nil, newError(OutOfBounds, "note entry name padding out of bounds")
		}

		content = content[descStart:]

		if len(content) < int(noteHdr.DescriptionSize) {
			return nil, newError(OutOfBounds, "not enough description bytes in note entry")
		}

		desc := string(content[:noteHdr.DescriptionSize])

		entries = append(
			entries,
			NoteEntry{
				Name:        name,
				Description: desc,
				Type:        noteHdr.Type,
			})

		// make nextEntryStart 4 byte aligned.
		nextEntryStart := ((noteHdr.DescriptionSize + 3) / 4) * 4
		if int(nextEntryStart) > len(content) {
			return nil, newError(OutOfBounds, "note entry description padding out of bounds")
		}
		content = content[nextEntryStart:]
	}

	return newNoteSection(header, entries), nil
}

// parseDynamic assembles the dynamic table, preferring the PT_DYNAMIC
// segment and falling back to the SHT_DYNAMIC section when no such
// segment is present.
func (p *parser) parseDynamic() error {
	var entries []Elf64Dyn
	var err error

	for _, phdr := range p.ProgramHeaders {
		if phdr.ProgramType == ProgramDynamicLinking {
			entries, err = SliceFromProgramHeader[Elf64Dyn](p.content, phdr)
			if err != nil {
				return wrapError(
					InvalidDynamicSectionTable,
					err,
					"out of bound PT_DYNAMIC segment")
			}
			break
		}
	}

	if entries == nil {
		for _, section := range p.Sections {
			hdr := section.Header()
			if hdr.SectionType == SectionTypeDynamic {
				entries, err = SliceFromSectionHeader[Elf64Dyn](p.content, hdr)
				if err != nil {
					return wrapError(
						InvalidDynamicSectionTable,
						err,
						"out of bound SHT_DYNAMIC section")
				}
				break
			}
		}
	}

	if entries == nil {
		return nil
	}

	table := &DynamicTable{}
	for _, entry := range entries {
		if entry.Tag == DTNull {
			break
		}
		table.set(entry.Tag, entry.Value)
	}

	p.Dynamic = table
	return nil
}

// parseDynamicRelocations resolves DT_REL / DT_RELSZ / DT_RELENT. DT_REL
// is a virtual address; it is resolved against a PT_LOAD segment first,
// falling back to matching a section's sh_addr when no segment covers it.
// This asymmetry (PT_LOAD-first here, section-first for the dynamic
// symbol table below) mirrors the reference tool this parser replaced.
func (p *parser) parseDynamicRelocations() error {
	if p.Dynamic == nil {
		return nil
	}

	relAddr, ok := p.Dynamic.Get(DTRel)
	if !ok {
		return nil
	}

	relSz, ok := p.Dynamic.Get(DTRelSz)
	if !ok {
		return newError(InvalidDynamicSectionTable, "DT_REL present without DT_RELSZ")
	}

	relEnt, ok := p.Dynamic.Get(DTRelEnt)
	if !ok {
		relEnt = Elf64RelEntrySize
	}
	if relEnt != Elf64RelEntrySize {
		return newError(
			InvalidDynamicSectionTable,
			"unsupported DT_RELENT (%d)",
			relEnt)
	}

	offset, ok := p.vaddrToOffset(relAddr)
	if !ok {
		hdr, ok := p.sectionAtAddress(relAddr)
		if !ok {
			return newError(
				InvalidDynamicSectionTable,
				"DT_REL address %#x does not resolve to any segment or section",
				relAddr)
		}
		offset = hdr.Offset
	}

	entries, err := SliceFromBytes[Elf64Rel](p.content, offset, relSz)
	if err != nil {
		return wrapError(InvalidRelocationTable, err, "failed to parse dynamic relocations")
	}

	p.DynamicRelocations = entries
	return nil
}

// resolveDynamicSymbolTable binds DT_SYMTAB to whichever parsed section
// has a matching sh_addr. Unlike DT_REL, no PT_LOAD offset translation is
// attempted here: the dynamic symbol table is always located by section,
// never by segment.
func (p *parser) resolveDynamicSymbolTable() error {
	if p.Dynamic == nil {
		return nil
	}

	symtabAddr, ok := p.Dynamic.Get(DTSymTab)
	if !ok {
		return nil
	}

	hdr, ok := p.sectionAtAddress(symtabAddr)
	if !ok {
		return newError(
			InvalidDynamicSectionTable,
			"DT_SYMTAB address %#x does not resolve to any section",
			symtabAddr)
	}

	for _, s := range p.Sections {
		if s.Header().Offset == hdr.Offset && s.Header().SectionType == hdr.SectionType {
			if table, ok := s.(*SymbolTableSection); ok {
				p.DynamicSymbolTable = table
				return nil
			}
		}
	}

	return newError(
		InvalidDynamicSectionTable,
		"DT_SYMTAB section at %#x is not a symbol table",
		symtabAddr)
}
