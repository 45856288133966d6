package storage

import (
	"errors"
	"unsafe"
)

type FieldType int16

var ErrInvalidFieldType = errors.New("invalid field type")

const (
	TINYINT FieldType = iota
	SMALLINT
	INT
	LONG
	NAME
	TEXT
	// UUID is a 16-byte fixed-length field type, stored as the raw binary
	// form of a github.com/google/uuid.UUID. Added to give the tagged
	// value codec a fixed-width identifier type beyond the plain integers.
	UUID
)

const SizeOfUUID Size = 16

var typeSizes = [...]Size{
	TINYINT:  SizeOfTinyInt,
	SMALLINT: SizeOfSmallInt,
	INT:      SizeOfInt,
	LONG:     SizeOfLong,
	NAME:     SizeOfName,
	TEXT:     SizeOfVarlen,
	UUID:     SizeOfUUID,
}

var typeNames = [...]string{
	"TINYINT",
	"SMALLINT",
	"INT",
	"LONG",
	"NAME",
	"TEXT",
	"UUID",
}

func (t FieldType) Size() Size {
	return typeSizes[t]
}

func (t FieldType) String() string {
	return typeNames[t]
}

// Name is a fixed-length string of 64 bytes, only composed of ASCII characters.
// The first byte is the length of the string.
// If a name is longer than 63 bytes, it is truncated to 63 bytes.
// It is used for table and field names.
type Name FixedLen

const (
	SizeOfName Size     = 64
	NameMaxLen SmallInt = 63
)

// NewName creates a new Name from a string.
// The unused bytes are left zero.
// If the string is longer than 63 bytes, it is truncated to 63 bytes.
func NewNameFromGoString(s string) Name {
	n := make(Name, 64)
	n.WriteGoString(s)

	return n
}

func (n Name) WriteGoString(s string) {
	bound := Offset(NameMaxLen)
	size := byte(NameMaxLen)
	if len(s) < int(NameMaxLen) {
		bound = Offset(len(s))
		size = byte(len(s))
	}

	n[0] = size

	copy(n[1:], s[:bound])
}

func (f FixedLen) AsName() Name {
	return Name(f)
}

func (n Name) AsGoString() string {
	return unsafe.String(&n[1], int(n[0]))
}
