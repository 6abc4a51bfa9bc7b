package ml

// cropTable maps the classifier's integer label to a crop name. The table is
// closed: the trained model was fitted on exactly these 22 classes.
var cropTable = map[int64]string{
	1:  "Rice",
	2:  "Maize",
	3:  "Jute",
	4:  "Cotton",
	5:  "Coconut",
	6:  "Papaya",
	7:  "Orange",
	8:  "Apple",
	9:  "Muskmelon",
	10: "Watermelon",
	11: "Grapes",
	12: "Mango",
	13: "Banana",
	14: "Pomegranate",
	15: "Lentil",
	16: "Blackgram",
	17: "Mungbean",
	18: "Mothbeans",
	19: "Pigeonpeas",
	20: "Kidneybeans",
	21: "Chickpea",
	22: "Coffee",
}

// CropName resolves a predicted label id. ok is false for ids outside the
// trained class set, which models a corrupted or out-of-range model output.
func CropName(id int64) (string, bool) {
	name, ok := cropTable[id]
	return name, ok
}
