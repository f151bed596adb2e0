package conv

const hexd = "0123456789abcdef"

// AppendHex appends the lowercase hex encoding of src to dst, two digits per byte.
func AppendHex(dst, src []byte) []byte {
	for _, b := range src {
		dst = append(dst, hexd[b>>4], hexd[b&0xF])
	}
	return dst
}

// AppendInt appends the base-10 form of n. No fmt/strconv dependency.
func AppendInt(dst []byte, n int64) []byte {
	if n < 0 {
		dst = append(dst, '-')
		return AppendUint(dst, uint64(-n))
	}
	return AppendUint(dst, uint64(n))
}

// AppendUint appends the base-10 form of n.
func AppendUint(dst []byte, n uint64) []byte {
	var buf [20]byte
	i := len(buf)
	if n == 0 {
		i--
		buf[i] = '0'
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, buf[i:]...)
}
