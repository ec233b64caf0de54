package model

// Campo identifies one of the fixed grain-analysis parameters measured on
// every reception. The set is closed: the weigh station lab always reports
// these eight values (as percentages of the net weight).
type Campo string

const (
	CampoHumedad         Campo = "humedad"
	CampoGranosVerdes    Campo = "granosVerdes"
	CampoImpurezas       Campo = "impurezas"
	CampoGranosManchados Campo = "granosManchados"
	CampoHualcacho       Campo = "hualcacho"
	CampoGranosPelados   Campo = "granosPelados"
	CampoGranosYesosos   Campo = "granosYesosos"
	CampoVano            Campo = "vano"
)

// Campos returns the full analysis field set in its canonical order.
func Campos() []Campo {
	return []Campo{
		CampoHumedad,
		CampoGranosVerdes,
		CampoImpurezas,
		CampoGranosManchados,
		CampoHualcacho,
		CampoGranosPelados,
		CampoGranosYesosos,
		CampoVano,
	}
}

// codigosCategoria maps each analysis field to its discount category code.
// Codes are stable identifiers shared with the rangos_descuento table.
var codigosCategoria = map[Campo]int{
	CampoHumedad:         1,
	CampoGranosVerdes:    2,
	CampoImpurezas:       3,
	CampoGranosManchados: 4,
	CampoHualcacho:       5,
	CampoGranosPelados:   6,
	CampoGranosYesosos:   7,
	CampoVano:            8,
}

// CodigoCategoria returns the discount category code for a field.
// The second return is false for an unknown field.
func CodigoCategoria(c Campo) (int, bool) {
	code, ok := codigosCategoria[c]
	return code, ok
}
