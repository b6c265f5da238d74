package core

// utoa64 converts an unsigned integer to a string without using fmt package
// This is a lightweight alternative for embedded systems
func utoa64(n uint64) string {
	if n == 0 {
		return "0"
	}

	// 20 digits holds the largest uint64
	var buf [20]byte
	pos := len(buf)

	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}

	return string(buf[pos:])
}

// hex32 formats v as eight lowercase hex digits
func hex32(v uint32) string {
	const digits = "0123456789abcdef"
	var buf [8]byte
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i] = digits[v&0xF]
		v >>= 4
	}
	return string(buf[:])
}
