// SPDX-License-Identifier: MIT
//
// Copyright (c) 2024 Adrian "asie" Siekierka

package elf

import (
	"fmt"
	"math/bits"
	"strings"
)

// Every tag type below is open: values without a name are kept as-is and
// report themselves as UNSPECIFIED. Known reports whether a name exists.

type tag interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func tagString[T tag](v T, names map[T]string) string {
	if s, ok := names[v]; ok {
		return s
	}
	return fmt.Sprintf("UNSPECIFIED(%#x)", uint64(v))
}

func flagString[T tag](v T, names map[T]string) string {
	if v == 0 {
		return "0"
	}
	var parts []string
	rest := uint64(v)
	for rest != 0 {
		bit := uint64(1) << bits.TrailingZeros64(rest)
		rest &^= bit
		if s, ok := names[T(bit)]; ok {
			parts = append(parts, s)
		} else {
			parts = append(parts, fmt.Sprintf("%#x", bit))
		}
	}
	return strings.Join(parts, "|")
}

func unknownBits[T tag](v T, names map[T]string) T {
	var known T
	for bit := range names {
		known |= bit
	}
	return v &^ known
}

// EI_CLASS
type FileClass uint8

const (
	ELFCLASSNONE FileClass = 0
	ELFCLASS32   FileClass = 1
	ELFCLASS64   FileClass = 2
)

var fileClassNames = map[FileClass]string{
	ELFCLASSNONE: "ELFCLASSNONE",
	ELFCLASS32:   "ELFCLASS32",
	ELFCLASS64:   "ELFCLASS64",
}

func (c FileClass) String() string { return tagString(c, fileClassNames) }
func (c FileClass) Known() bool { _, ok := fileClassNames[c]; return ok }

// EI_DATA
type FileEndian uint8

const (
	ELFDATANONE FileEndian = 0
	ELFDATA2LSB FileEndian = 1
	ELFDATA2MSB FileEndian = 2
)

var fileEndianNames = map[FileEndian]string{
	ELFDATANONE: "ELFDATANONE",
	ELFDATA2LSB: "ELFDATA2LSB",
	ELFDATA2MSB: "ELFDATA2MSB",
}

func (e FileEndian) String() string { return tagString(e, fileEndianNames) }
func (e FileEndian) Known() bool { _, ok := fileEndianNames[e]; return ok }

// EI_OSABI
type FileABI uint8

const (
	ELFOSABI_SYSV       FileABI = 0
	ELFOSABI_HPUX       FileABI = 1
	ELFOSABI_NETBSD     FileABI = 2
	ELFOSABI_LINUX      FileABI = 3
	ELFOSABI_SOLARIS    FileABI = 6
	ELFOSABI_FREEBSD    FileABI = 9
	ELFOSABI_OPENBSD    FileABI = 12
	ELFOSABI_ARM        FileABI = 97
	ELFOSABI_STANDALONE FileABI = 255
)

var fileABINames = map[FileABI]string{
	ELFOSABI_SYSV:       "ELFOSABI_SYSV",
	ELFOSABI_HPUX:       "ELFOSABI_HPUX",
	ELFOSABI_NETBSD:     "ELFOSABI_NETBSD",
	ELFOSABI_LINUX:      "ELFOSABI_LINUX",
	ELFOSABI_SOLARIS:    "ELFOSABI_SOLARIS",
	ELFOSABI_FREEBSD:    "ELFOSABI_FREEBSD",
	ELFOSABI_OPENBSD:    "ELFOSABI_OPENBSD",
	ELFOSABI_ARM:        "ELFOSABI_ARM",
	ELFOSABI_STANDALONE: "ELFOSABI_STANDALONE",
}

func (a FileABI) String() string { return tagString(a, fileABINames) }
func (a FileABI) Known() bool { _, ok := fileABINames[a]; return ok }

type FileType uint16

const (
	ET_NONE   FileType = 0
	ET_REL    FileType = 1
	ET_EXEC   FileType = 2
	ET_DYN    FileType = 3
	ET_CORE   FileType = 4
	ET_LOOS   FileType = 0xFE00
	ET_HIOS   FileType = 0xFEFF
	ET_LOPROC FileType = 0xFF00
	ET_HIPROC FileType = 0xFFFF
)

var fileTypeNames = map[FileType]string{
	ET_NONE: "ET_NONE",
	ET_REL:  "ET_REL",
	ET_EXEC: "ET_EXEC",
	ET_DYN:  "ET_DYN",
	ET_CORE: "ET_CORE",
}

func (t FileType) String() string { return tagString(t, fileTypeNames) }
func (t FileType) Known() bool { _, ok := fileTypeNames[t]; return ok }

type MachineType uint16

const (
	EM_NONE        MachineType = 0   // None.
	EM_M32         MachineType = 1   // AT&T WE 32100
	EM_SPARC       MachineType = 2   // SPARC
	EM_386         MachineType = 3   // 386-compatible processor; also used by gcc-ia16 to denote 8086-compatible processor.
	EM_68K         MachineType = 4   // Motorola 68000
	EM_88K         MachineType = 5   // Motorola 88000
	EM_860         MachineType = 7   // Intel 80860
	EM_MIPS        MachineType = 8   // MIPS processor
	EM_MIPS_RS4_BE MachineType = 10  // MIPS RS4000 big-endian
	EM_ARM         MachineType = 40  // ARM processor
	EM_X86_64      MachineType = 62  // AMD x86-64
	EM_AARCH64     MachineType = 183 // ARM 64-bit
	EM_RISCV       MachineType = 243 // RISC-V
)

var machineTypeNames = map[MachineType]string{
	EM_NONE:        "EM_NONE",
	EM_M32:         "EM_M32",
	EM_SPARC:       "EM_SPARC",
	EM_386:         "EM_386",
	EM_68K:         "EM_68K",
	EM_88K:         "EM_88K",
	EM_860:         "EM_860",
	EM_MIPS:        "EM_MIPS",
	EM_MIPS_RS4_BE: "EM_MIPS_RS4_BE",
	EM_ARM:         "EM_ARM",
	EM_X86_64:      "EM_X86_64",
	EM_AARCH64:     "EM_AARCH64",
	EM_RISCV:       "EM_RISCV",
}

func (m MachineType) String() string { return tagString(m, machineTypeNames) }
func (m MachineType) Known() bool { _, ok := machineTypeNames[m]; return ok }

type FileVersion uint32

const (
	EV_NONE    FileVersion = 0
	EV_CURRENT FileVersion = 1
)

var fileVersionNames = map[FileVersion]string{
	EV_NONE:    "EV_NONE",
	EV_CURRENT: "EV_CURRENT",
}

func (v FileVersion) String() string { return tagString(v, fileVersionNames) }
func (v FileVersion) Known() bool { _, ok := fileVersionNames[v]; return ok }

// Section header index
const (
	SHN_UNDEF     = 0
	SHN_LORESERVE = 0xFF00
	SHN_ABS       = 0xFFF1
	SHN_COMMON    = 0xFFF2
	SHN_XINDEX    = 0xFFFF
)

// Program header count escape; the real count lives in the first section's Info.
const PN_XNUM = 0xFFFF

type SectionHeaderType uint32

const (
	SHT_NULL           SectionHeaderType = 0
	SHT_PROGBITS       SectionHeaderType = 1
	SHT_SYMTAB         SectionHeaderType = 2
	SHT_STRTAB         SectionHeaderType = 3
	SHT_RELA           SectionHeaderType = 4
	SHT_HASH           SectionHeaderType = 5
	SHT_DYNAMIC        SectionHeaderType = 6
	SHT_NOTE           SectionHeaderType = 7
	SHT_NOBITS         SectionHeaderType = 8
	SHT_REL            SectionHeaderType = 9
	SHT_SHLIB          SectionHeaderType = 10
	SHT_DYNSYM         SectionHeaderType = 11
	SHT_INIT_ARRAY     SectionHeaderType = 14
	SHT_FINI_ARRAY     SectionHeaderType = 15
	SHT_PREINIT_ARRAY  SectionHeaderType = 16
	SHT_GROUP          SectionHeaderType = 17
	SHT_SYMTAB_SHNDX   SectionHeaderType = 18
	SHT_GNU_LIBLIST    SectionHeaderType = 0x6ffffff5
	SHT_GNU_HASH       SectionHeaderType = 0x6ffffff6
	SHT_GNU_ATTRIBUTES SectionHeaderType = 0x6ffffff7
	SHT_GNU_VERDEF     SectionHeaderType = 0x6ffffffd
	SHT_GNU_VERNEED    SectionHeaderType = 0x6ffffffe
	SHT_GNU_VERSYM     SectionHeaderType = 0x6fffffff
	SHT_X86_64_UNWIND  SectionHeaderType = 0x70000001
)

var sectionHeaderTypeNames = map[SectionHeaderType]string{
	SHT_NULL:           "SHT_NULL",
	SHT_PROGBITS:       "SHT_PROGBITS",
	SHT_SYMTAB:         "SHT_SYMTAB",
	SHT_STRTAB:         "SHT_STRTAB",
	SHT_RELA:           "SHT_RELA",
	SHT_HASH:           "SHT_HASH",
	SHT_DYNAMIC:        "SHT_DYNAMIC",
	SHT_NOTE:           "SHT_NOTE",
	SHT_NOBITS:         "SHT_NOBITS",
	SHT_REL:            "SHT_REL",
	SHT_SHLIB:          "SHT_SHLIB",
	SHT_DYNSYM:         "SHT_DYNSYM",
	SHT_INIT_ARRAY:     "SHT_INIT_ARRAY",
	SHT_FINI_ARRAY:     "SHT_FINI_ARRAY",
	SHT_PREINIT_ARRAY:  "SHT_PREINIT_ARRAY",
	SHT_GROUP:          "SHT_GROUP",
	SHT_SYMTAB_SHNDX:   "SHT_SYMTAB_SHNDX",
	SHT_GNU_LIBLIST:    "SHT_GNU_LIBLIST",
	SHT_GNU_HASH:       "SHT_GNU_HASH",
	SHT_GNU_ATTRIBUTES: "SHT_GNU_ATTRIBUTES",
	SHT_GNU_VERDEF:     "SHT_GNU_VERDEF",
	SHT_GNU_VERNEED:    "SHT_GNU_VERNEED",
	SHT_GNU_VERSYM:     "SHT_GNU_VERSYM",
	SHT_X86_64_UNWIND:  "SHT_X86_64_UNWIND",
}

func (s SectionHeaderType) String() string { return tagString(s, sectionHeaderTypeNames) }
func (s SectionHeaderType) Known() bool { _, ok := sectionHeaderTypeNames[s]; return ok }

func (s SectionHeaderType) HasSectionInInfo() bool {
	return s == SHT_REL || s == SHT_RELA
}

func (s SectionHeaderType) HasDataInFile() bool {
	return s != SHT_NOBITS
}

// Section header flags
type SectionHeaderFlag uint64

const (
	SHF_WRITE            SectionHeaderFlag = 0x00000001
	SHF_ALLOC            SectionHeaderFlag = 0x00000002
	SHF_EXECINSTR        SectionHeaderFlag = 0x00000004
	SHF_MERGE            SectionHeaderFlag = 0x00000010
	SHF_STRINGS          SectionHeaderFlag = 0x00000020
	SHF_INFO_LINK        SectionHeaderFlag = 0x00000040
	SHF_LINK_ORDER       SectionHeaderFlag = 0x00000080
	SHF_OS_NONCONFORMING SectionHeaderFlag = 0x00000100
	SHF_GROUP            SectionHeaderFlag = 0x00000200
	SHF_TLS              SectionHeaderFlag = 0x00000400
	SHF_COMPRESSED       SectionHeaderFlag = 0x00000800
	SHF_X86_64_LARGE     SectionHeaderFlag = 0x10000000
	SHF_GNU_RETAIN       SectionHeaderFlag = 0x00200000
	SHF_EXCLUDE          SectionHeaderFlag = 0x80000000
)

var sectionHeaderFlagNames = map[SectionHeaderFlag]string{
	SHF_WRITE:            "SHF_WRITE",
	SHF_ALLOC:            "SHF_ALLOC",
	SHF_EXECINSTR:        "SHF_EXECINSTR",
	SHF_MERGE:            "SHF_MERGE",
	SHF_STRINGS:          "SHF_STRINGS",
	SHF_INFO_LINK:        "SHF_INFO_LINK",
	SHF_LINK_ORDER:       "SHF_LINK_ORDER",
	SHF_OS_NONCONFORMING: "SHF_OS_NONCONFORMING",
	SHF_GROUP:            "SHF_GROUP",
	SHF_TLS:              "SHF_TLS",
	SHF_COMPRESSED:       "SHF_COMPRESSED",
	SHF_X86_64_LARGE:     "SHF_X86_64_LARGE",
	SHF_GNU_RETAIN:       "SHF_GNU_RETAIN",
	SHF_EXCLUDE:          "SHF_EXCLUDE",
}

func (f SectionHeaderFlag) String() string { return flagString(f, sectionHeaderFlagNames) }

// Unknown returns the bits that have no name.
func (f SectionHeaderFlag) Unknown() SectionHeaderFlag {
	return unknownBits(f, sectionHeaderFlagNames)
}

// Symbol table type
type SymbolType uint8

const (
	STT_NOTYPE    SymbolType = 0
	STT_OBJECT    SymbolType = 1
	STT_FUNC      SymbolType = 2
	STT_SECTION   SymbolType = 3
	STT_FILE      SymbolType = 4
	STT_COMMON    SymbolType = 5
	STT_TLS       SymbolType = 6
	STT_GNU_IFUNC SymbolType = 10
)

var symbolTypeNames = map[SymbolType]string{
	STT_NOTYPE:    "STT_NOTYPE",
	STT_OBJECT:    "STT_OBJECT",
	STT_FUNC:      "STT_FUNC",
	STT_SECTION:   "STT_SECTION",
	STT_FILE:      "STT_FILE",
	STT_COMMON:    "STT_COMMON",
	STT_TLS:       "STT_TLS",
	STT_GNU_IFUNC: "STT_GNU_IFUNC",
}

func (t SymbolType) String() string { return tagString(t, symbolTypeNames) }
func (t SymbolType) Known() bool { _, ok := symbolTypeNames[t]; return ok }

type SymbolBinding uint8

const (
	STB_LOCAL      SymbolBinding = 0
	STB_GLOBAL     SymbolBinding = 1
	STB_WEAK       SymbolBinding = 2
	STB_GNU_UNIQUE SymbolBinding = 10
)

var symbolBindingNames = map[SymbolBinding]string{
	STB_LOCAL:      "STB_LOCAL",
	STB_GLOBAL:     "STB_GLOBAL",
	STB_WEAK:       "STB_WEAK",
	STB_GNU_UNIQUE: "STB_GNU_UNIQUE",
}

func (b SymbolBinding) String() string { return tagString(b, symbolBindingNames) }
func (b SymbolBinding) Known() bool { _, ok := symbolBindingNames[b]; return ok }

type ProgramHeaderType uint32

const (
	PT_NULL         ProgramHeaderType = 0
	PT_LOAD         ProgramHeaderType = 1
	PT_DYNAMIC      ProgramHeaderType = 2
	PT_INTERP       ProgramHeaderType = 3
	PT_NOTE         ProgramHeaderType = 4
	PT_SHLIB        ProgramHeaderType = 5
	PT_PHDR         ProgramHeaderType = 6
	PT_TLS          ProgramHeaderType = 7
	PT_GNU_EH_FRAME ProgramHeaderType = 0x6474e550
	PT_GNU_STACK    ProgramHeaderType = 0x6474e551
	PT_GNU_RELRO    ProgramHeaderType = 0x6474e552
	PT_GNU_PROPERTY ProgramHeaderType = 0x6474e553
)

var programHeaderTypeNames = map[ProgramHeaderType]string{
	PT_NULL:         "PT_NULL",
	PT_LOAD:         "PT_LOAD",
	PT_DYNAMIC:      "PT_DYNAMIC",
	PT_INTERP:       "PT_INTERP",
	PT_NOTE:         "PT_NOTE",
	PT_SHLIB:        "PT_SHLIB",
	PT_PHDR:         "PT_PHDR",
	PT_TLS:          "PT_TLS",
	PT_GNU_EH_FRAME: "PT_GNU_EH_FRAME",
	PT_GNU_STACK:    "PT_GNU_STACK",
	PT_GNU_RELRO:    "PT_GNU_RELRO",
	PT_GNU_PROPERTY: "PT_GNU_PROPERTY",
}

func (t ProgramHeaderType) String() string { return tagString(t, programHeaderTypeNames) }
func (t ProgramHeaderType) Known() bool { _, ok := programHeaderTypeNames[t]; return ok }

type ProgramHeaderFlag uint32

const (
	PF_X ProgramHeaderFlag = 0x1
	PF_W ProgramHeaderFlag = 0x2
	PF_R ProgramHeaderFlag = 0x4
)

var programHeaderFlagNames = map[ProgramHeaderFlag]string{
	PF_X: "PF_X",
	PF_W: "PF_W",
	PF_R: "PF_R",
}

func (f ProgramHeaderFlag) String() string { return flagString(f, programHeaderFlagNames) }

// Unknown returns the bits outside {PF_X, PF_W, PF_R}. They are kept, not rejected.
func (f ProgramHeaderFlag) Unknown() ProgramHeaderFlag {
	return unknownBits(f, programHeaderFlagNames)
}

// Permissions renders the flags as an "rwx" triple.
func (f ProgramHeaderFlag) Permissions() string {
	perm := []byte("---")
	if f&PF_R != 0 {
		perm[0] = 'r'
	}
	if f&PF_W != 0 {
		perm[1] = 'w'
	}
	if f&PF_X != 0 {
		perm[2] = 'x'
	}
	return string(perm)
}

// x86-64 relocation kinds.
type RelocationType uint32

const (
	R_X86_64_NONE                   RelocationType = 0
	R_X86_64_64                     RelocationType = 1
	R_X86_64_PC32                   RelocationType = 2
	R_X86_64_GOT32                  RelocationType = 3
	R_X86_64_PLT32                  RelocationType = 4
	R_X86_64_COPY                   RelocationType = 5
	R_X86_64_GLOB_DAT               RelocationType = 6
	R_X86_64_JUMP_SLOT              RelocationType = 7
	R_X86_64_RELATIVE               RelocationType = 8
	R_X86_64_GOTPCREL               RelocationType = 9
	R_X86_64_32                     RelocationType = 10
	R_X86_64_32S                    RelocationType = 11
	R_X86_64_16                     RelocationType = 12
	R_X86_64_PC16                   RelocationType = 13
	R_X86_64_8                      RelocationType = 14
	R_X86_64_PC8                    RelocationType = 15
	R_X86_64_DTPMOD64               RelocationType = 16
	R_X86_64_DTPOFF64               RelocationType = 17
	R_X86_64_TPOFF64                RelocationType = 18
	R_X86_64_TLSGD                  RelocationType = 19
	R_X86_64_TLSLD                  RelocationType = 20
	R_X86_64_DTPOFF32               RelocationType = 21
	R_X86_64_GOTTPOFF               RelocationType = 22
	R_X86_64_TPOFF32                RelocationType = 23
	R_X86_64_PC64                   RelocationType = 24
	R_X86_64_GOTOFF64               RelocationType = 25
	R_X86_64_GOTPC32                RelocationType = 26
	R_X86_64_SIZE32                 RelocationType = 32
	R_X86_64_SIZE64                 RelocationType = 33
	R_X86_64_GOTPC32_TLSDESC        RelocationType = 34
	R_X86_64_TLSDESC_CALL           RelocationType = 35
	R_X86_64_TLSDESC                RelocationType = 36
	R_X86_64_IRELATIVE              RelocationType = 37
	R_X86_64_RELATIVE64             RelocationType = 38
	R_X86_64_GOTPCRELX              RelocationType = 41
	R_X86_64_REX_GOTPCRELX          RelocationType = 42
	R_X86_64_CODE_4_GOTPCRELX       RelocationType = 43
	R_X86_64_CODE_4_GOTTPOFF        RelocationType = 44
	R_X86_64_CODE_4_GOTPC32_TLSDESC RelocationType = 45
	R_X86_64_CODE_5_GOTPCRELX       RelocationType = 46
	R_X86_64_CODE_5_GOTTPOFF        RelocationType = 47
	R_X86_64_CODE_5_GOTPC32_TLSDESC RelocationType = 48
	R_X86_64_CODE_6_GOTPCRELX       RelocationType = 49
	R_X86_64_CODE_6_GOTTPOFF        RelocationType = 50
	R_X86_64_CODE_6_GOTPC32_TLSDESC RelocationType = 51
)

var relocationTypeNames = map[RelocationType]string{
	R_X86_64_NONE:                   "R_X86_64_NONE",
	R_X86_64_64:                     "R_X86_64_64",
	R_X86_64_PC32:                   "R_X86_64_PC32",
	R_X86_64_GOT32:                  "R_X86_64_GOT32",
	R_X86_64_PLT32:                  "R_X86_64_PLT32",
	R_X86_64_COPY:                   "R_X86_64_COPY",
	R_X86_64_GLOB_DAT:               "R_X86_64_GLOB_DAT",
	R_X86_64_JUMP_SLOT:              "R_X86_64_JUMP_SLOT",
	R_X86_64_RELATIVE:               "R_X86_64_RELATIVE",
	R_X86_64_GOTPCREL:               "R_X86_64_GOTPCREL",
	R_X86_64_32:                     "R_X86_64_32",
	R_X86_64_32S:                    "R_X86_64_32S",
	R_X86_64_16:                     "R_X86_64_16",
	R_X86_64_PC16:                   "R_X86_64_PC16",
	R_X86_64_8:                      "R_X86_64_8",
	R_X86_64_PC8:                    "R_X86_64_PC8",
	R_X86_64_DTPMOD64:               "R_X86_64_DTPMOD64",
	R_X86_64_DTPOFF64:               "R_X86_64_DTPOFF64",
	R_X86_64_TPOFF64:                "R_X86_64_TPOFF64",
	R_X86_64_TLSGD:                  "R_X86_64_TLSGD",
	R_X86_64_TLSLD:                  "R_X86_64_TLSLD",
	R_X86_64_DTPOFF32:               "R_X86_64_DTPOFF32",
	R_X86_64_GOTTPOFF:               "R_X86_64_GOTTPOFF",
	R_X86_64_TPOFF32:                "R_X86_64_TPOFF32",
	R_X86_64_PC64:                   "R_X86_64_PC64",
	R_X86_64_GOTOFF64:               "R_X86_64_GOTOFF64",
	R_X86_64_GOTPC32:                "R_X86_64_GOTPC32",
	R_X86_64_SIZE32:                 "R_X86_64_SIZE32",
	R_X86_64_SIZE64:                 "R_X86_64_SIZE64",
	R_X86_64_GOTPC32_TLSDESC:        "R_X86_64_GOTPC32_TLSDESC",
	R_X86_64_TLSDESC_CALL:           "R_X86_64_TLSDESC_CALL",
	R_X86_64_TLSDESC:                "R_X86_64_TLSDESC",
	R_X86_64_IRELATIVE:              "R_X86_64_IRELATIVE",
	R_X86_64_RELATIVE64:             "R_X86_64_RELATIVE64",
	R_X86_64_GOTPCRELX:              "R_X86_64_GOTPCRELX",
	R_X86_64_REX_GOTPCRELX:          "R_X86_64_REX_GOTPCRELX",
	R_X86_64_CODE_4_GOTPCRELX:       "R_X86_64_CODE_4_GOTPCRELX",
	R_X86_64_CODE_4_GOTTPOFF:        "R_X86_64_CODE_4_GOTTPOFF",
	R_X86_64_CODE_4_GOTPC32_TLSDESC: "R_X86_64_CODE_4_GOTPC32_TLSDESC",
	R_X86_64_CODE_5_GOTPCRELX:       "R_X86_64_CODE_5_GOTPCRELX",
	R_X86_64_CODE_5_GOTTPOFF:        "R_X86_64_CODE_5_GOTTPOFF",
	R_X86_64_CODE_5_GOTPC32_TLSDESC: "R_X86_64_CODE_5_GOTPC32_TLSDESC",
	R_X86_64_CODE_6_GOTPCRELX:       "R_X86_64_CODE_6_GOTPCRELX",
	R_X86_64_CODE_6_GOTTPOFF:        "R_X86_64_CODE_6_GOTTPOFF",
	R_X86_64_CODE_6_GOTPC32_TLSDESC: "R_X86_64_CODE_6_GOTPC32_TLSDESC",
}

func (t RelocationType) String() string { return tagString(t, relocationTypeNames) }
func (t RelocationType) Known() bool { _, ok := relocationTypeNames[t]; return ok }

type DynamicTag uint64

const (
	DT_NULL          DynamicTag = 0
	DT_NEEDED        DynamicTag = 1
	DT_PLTRELSZ      DynamicTag = 2
	DT_PLTGOT        DynamicTag = 3
	DT_HASH          DynamicTag = 4
	DT_STRTAB        DynamicTag = 5
	DT_SYMTAB        DynamicTag = 6
	DT_RELA          DynamicTag = 7
	DT_RELASZ        DynamicTag = 8
	DT_RELAENT       DynamicTag = 9
	DT_STRSZ         DynamicTag = 10
	DT_SYMENT        DynamicTag = 11
	DT_INIT          DynamicTag = 12
	DT_FINI          DynamicTag = 13
	DT_SONAME        DynamicTag = 14
	DT_RPATH         DynamicTag = 15
	DT_SYMBOLIC      DynamicTag = 16
	DT_REL           DynamicTag = 17
	DT_RELSZ         DynamicTag = 18
	DT_RELENT        DynamicTag = 19
	DT_PLTREL        DynamicTag = 20
	DT_DEBUG         DynamicTag = 21
	DT_TEXTREL       DynamicTag = 22
	DT_JMPREL        DynamicTag = 23
	DT_BIND_NOW      DynamicTag = 24
	DT_INIT_ARRAY    DynamicTag = 25
	DT_FINI_ARRAY    DynamicTag = 26
	DT_INIT_ARRAYSZ  DynamicTag = 27
	DT_FINI_ARRAYSZ  DynamicTag = 28
	DT_RUNPATH       DynamicTag = 29
	DT_FLAGS         DynamicTag = 30
	DT_GNU_HASH      DynamicTag = 0x6ffffef5
	DT_VERSYM        DynamicTag = 0x6ffffff0
	DT_RELACOUNT     DynamicTag = 0x6ffffff9
	DT_RELCOUNT      DynamicTag = 0x6ffffffa
	DT_FLAGS_1       DynamicTag = 0x6ffffffb
	DT_VERNEED       DynamicTag = 0x6ffffffe
	DT_VERNEEDNUM    DynamicTag = 0x6fffffff
	DT_X86_64_PLT    DynamicTag = 0x70000000
	DT_X86_64_PLTSZ  DynamicTag = 0x70000001
	DT_X86_64_PLTENT DynamicTag = 0x70000003
)

var dynamicTagNames = map[DynamicTag]string{
	DT_NULL:          "DT_NULL",
	DT_NEEDED:        "DT_NEEDED",
	DT_PLTRELSZ:      "DT_PLTRELSZ",
	DT_PLTGOT:        "DT_PLTGOT",
	DT_HASH:          "DT_HASH",
	DT_STRTAB:        "DT_STRTAB",
	DT_SYMTAB:        "DT_SYMTAB",
	DT_RELA:          "DT_RELA",
	DT_RELASZ:        "DT_RELASZ",
	DT_RELAENT:       "DT_RELAENT",
	DT_STRSZ:         "DT_STRSZ",
	DT_SYMENT:        "DT_SYMENT",
	DT_INIT:          "DT_INIT",
	DT_FINI:          "DT_FINI",
	DT_SONAME:        "DT_SONAME",
	DT_RPATH:         "DT_RPATH",
	DT_SYMBOLIC:      "DT_SYMBOLIC",
	DT_REL:           "DT_REL",
	DT_RELSZ:         "DT_RELSZ",
	DT_RELENT:        "DT_RELENT",
	DT_PLTREL:        "DT_PLTREL",
	DT_DEBUG:         "DT_DEBUG",
	DT_TEXTREL:       "DT_TEXTREL",
	DT_JMPREL:        "DT_JMPREL",
	DT_BIND_NOW:      "DT_BIND_NOW",
	DT_INIT_ARRAY:    "DT_INIT_ARRAY",
	DT_FINI_ARRAY:    "DT_FINI_ARRAY",
	DT_INIT_ARRAYSZ:  "DT_INIT_ARRAYSZ",
	DT_FINI_ARRAYSZ:  "DT_FINI_ARRAYSZ",
	DT_RUNPATH:       "DT_RUNPATH",
	DT_FLAGS:         "DT_FLAGS",
	DT_GNU_HASH:      "DT_GNU_HASH",
	DT_VERSYM:        "DT_VERSYM",
	DT_RELACOUNT:     "DT_RELACOUNT",
	DT_RELCOUNT:      "DT_RELCOUNT",
	DT_FLAGS_1:       "DT_FLAGS_1",
	DT_VERNEED:       "DT_VERNEED",
	DT_VERNEEDNUM:    "DT_VERNEEDNUM",
	DT_X86_64_PLT:    "DT_X86_64_PLT",
	DT_X86_64_PLTSZ:  "DT_X86_64_PLTSZ",
	DT_X86_64_PLTENT: "DT_X86_64_PLTENT",
}

func (t DynamicTag) String() string { return tagString(t, dynamicTagNames) }
func (t DynamicTag) Known() bool { _, ok := dynamicTagNames[t]; return ok }
