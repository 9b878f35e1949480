package scan

// zipTail is the end of a small ZIP archive: the tail of a local file entry,
// a central directory header at 0x16 and the end of central directory record
// at 0x6A.
var zipTail = []byte{
	0x00, 0x2F, 0x6D, 0x61, 0x78, 0x5F, 0x73, 0x69, 0x7A, 0x65, 0x2E, 0x72,
	0x73, 0x55, 0x54, 0x05, 0x00, 0x01, 0xA9, 0xBA, 0xEE, 0x63, 0x50, 0x4B,
	0x01, 0x02, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x00, 0x08, 0x00, 0xC8, 0x7A,
	0x50, 0x56, 0xDB, 0x87, 0xEE, 0xBA, 0x1A, 0x02, 0x00, 0x00, 0x8C, 0x09,
	0x00, 0x00, 0x1D, 0x00, 0x09, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01, 0x00,
	0x00, 0x00, 0x00, 0x00, 0xF5, 0xEC, 0x00, 0x00, 0x70, 0x6F, 0x73, 0x74,
	0x63, 0x61, 0x72, 0x64, 0x2D, 0x6D, 0x61, 0x69, 0x6E, 0x2F, 0x74, 0x65,
	0x73, 0x74, 0x73, 0x2F, 0x73, 0x63, 0x68, 0x65, 0x6D, 0x61, 0x2E, 0x72,
	0x73, 0x55, 0x54, 0x05, 0x00, 0x01, 0xA9, 0xBA, 0xEE, 0x63, 0x50, 0x4B,
	0x05, 0x06, 0x00, 0x00, 0x00, 0x00, 0x2C, 0x00, 0x2C, 0x00, 0x82, 0x0E,
	0x00, 0x00, 0x53, 0xEF, 0x00, 0x00, 0x28, 0x00, 0x61, 0x31, 0x63, 0x33,
	0x61, 0x66, 0x34, 0x37, 0x61, 0x65, 0x63, 0x34, 0x33, 0x33, 0x61, 0x34,
	0x30, 0x30, 0x62, 0x39, 0x38, 0x37, 0x31, 0x38, 0x64, 0x36, 0x37, 0x65,
	0x32, 0x62, 0x38, 0x38, 0x33, 0x61, 0x36, 0x36, 0x38, 0x64, 0x37, 0x37,
}
