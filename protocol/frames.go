package protocol

// BuildWriteFrame constructs a write transaction frame.
//
// Frame structure:
//
//	[OPCODE?][ADDR...][DATA...]
//
// The opcode is included only when op.HasOpcode is set.
func BuildWriteFrame(op Operation, addr Address, data []byte) []byte {
	frame := make([]byte, 0, 1+addr.Width()+len(data))

	if op.HasOpcode {
		frame = append(frame, op.Opcode)
	}

	frame = append(frame, addr.Bytes()...)
	frame = append(frame, data...)

	return frame
}

// BuildAddressFrame constructs the frame that sets the device address pointer
// ahead of a sequential read.
//
// Frame structure:
//
//	[OPCODE?][ADDR...]
func BuildAddressFrame(op Operation, addr Address) []byte {
	return BuildWriteFrame(op, addr, nil)
}

// SplitFrame decodes a frame built by BuildWriteFrame for a device.
// It returns the opcode (if the device uses one for op), the address and the payload.
// ok is false when the frame is too short to hold the opcode and address.
func SplitFrame(op Operation, width int, frame []byte) (opcode byte, addr uint32, data []byte, ok bool) {
	if op.HasOpcode {
		if len(frame) < 1 {
			return 0, 0, nil, false
		}
		opcode = frame[0]
		frame = frame[1:]
	}

	if len(frame) < width {
		return 0, 0, nil, false
	}

	for _, b := range frame[:width] {
		addr = addr<<BitsPerByte | uint32(b)
	}

	return opcode, addr, frame[width:], true
}
