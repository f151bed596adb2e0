package pins

// Command sets one logical pin. Level > 0 means high.
type Command struct {
	Index byte
	Level byte
}

// High reports the logical level requested by c.
func (c Command) High() bool { return c.Level > 0 }

// Frames is the number of complete commands in buf.
func Frames(buf []byte) int { return len(buf) / 2 }

// Decode splits buf into (index, level) pairs in buffer order. A trailing
// odd byte is dropped.
func Decode(buf []byte) []Command {
	cmds := make([]Command, 0, Frames(buf))
	for i := 0; i+1 < len(buf); i += 2 {
		cmds = append(cmds, Command{Index: buf[i], Level: buf[i+1]})
	}
	return cmds
}
