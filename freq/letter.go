package freq

// LetterTable is the frequency model of the first firmware: one row per
// natural note from C3 to B6 (C,D,E,F,G,A,B, then C..B, c..b and c'..b'),
// with the sharp in the second column, and a final all-zero row for rests.
// E and B carry their natural frequency in the sharp column.
//
// Deprecated: it cannot express double accidentals or octaves outside
// C3..B6, and flats only work by borrowing the sharp of the row below. Use
// Table, which reproduces every entry here after rounding.
var LetterTable = [29][2]int{
	{131, 139}, {147, 156}, {165, 165}, {175, 185}, {196, 208}, {220, 233}, {247, 247},
	{262, 277}, {294, 311}, {330, 330}, {349, 370}, {392, 415}, {440, 466}, {494, 494},
	{523, 554}, {587, 622}, {659, 659}, {698, 740}, {784, 831}, {880, 932}, {988, 988},
	{1047, 1109}, {1175, 1245}, {1319, 1319}, {1397, 1480}, {1568, 1661}, {1760, 1865}, {1976, 1976},
	{0, 0},
}

// LetterRow returns the LetterTable row for a natural note, or -1 when the
// note lies outside C3..B6.
//
// Deprecated: see LetterTable.
func LetterRow(octave int, letter byte) int {
	const order = "CDEFGAB"
	if octave < 3 || octave > 6 {
		return -1
	}
	for i := 0; i < len(order); i++ {
		if order[i] == letter {
			return (octave-3)*7 + i
		}
	}
	return -1
}
