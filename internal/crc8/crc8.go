package crc8

// Params holds the fixed parameters of the reflected CRC-8 used by the calculator.
type Params struct {
	Polynomial uint8
	Init       uint8
	Name       string
}

// Maxim is the CRC-8/MAXIM (Dallas 1-Wire) parameter set: reflected polynomial
// 0x8C, initial value 0x00, no final XOR.
var Maxim = Params{
	Polynomial: 0x8C,
	Init:       0x00,
	Name:       "CRC-8/MAXIM",
}

// Checksum calculates the 8-bit CRC of data, least significant bit first.
func Checksum(data []byte, p Params) uint8 {
	crc := p.Init
	for _, b := range data {
		crc ^= b
		for i := 0; i < 8; i++ {
			if crc&0x01 != 0 {
				crc = (crc >> 1) ^ p.Polynomial
			} else {
				crc >>= 1
			}
		}
	}
	return crc
}
