// Package region はナンバープレートの発行地域（米国州・カナダ州・メキシコ州）の
// 静的な参照データを提供する。コード→表示名の対応表のみで振る舞いは持たない。
package region

// usStates は米国の州・特別区のコード→名称の対応表。
var usStates = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"DC": "District of Columbia",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
}

// canadianProvinces はカナダの州・準州のコード→名称の対応表。
var canadianProvinces = map[string]string{
	"AB": "Alberta",
	"BC": "British Columbia",
	"MB": "Manitoba",
	"NB": "New Brunswick",
	"NL": "Newfoundland and Labrador",
	"NS": "Nova Scotia",
	"NT": "Northwest Territories",
	"NU": "Nunavut",
	"ON": "Ontario",
	"PE": "Prince Edward Island",
	"QC": "Quebec",
	"SK": "Saskatchewan",
	"YT": "Yukon",
}

// mexicanStates はメキシコの州のコード→名称の対応表。
// 米国・カナダの2文字コードと衝突しないよう3文字コードを使用する。
var mexicanStates = map[string]string{
	"AGU": "Aguascalientes",
	"BCN": "Baja California",
	"BCS": "Baja California Sur",
	"CAM": "Campeche",
	"CHP": "Chiapas",
	"CHH": "Chihuahua",
	"CMX": "Mexico City",
	"COA": "Coahuila",
	"COL": "Colima",
	"DUR": "Durango",
	"GUA": "Guanajuato",
	"GRO": "Guerrero",
	"HID": "Hidalgo",
	"JAL": "Jalisco",
	"MEX": "Mexico State",
	"MIC": "Michoacan",
	"MOR": "Morelos",
	"NAY": "Nayarit",
	"NLE": "Nuevo Leon",
	"OAX": "Oaxaca",
	"PUE": "Puebla",
	"QUE": "Queretaro",
	"ROO": "Quintana Roo",
	"SLP": "San Luis Potosi",
	"SIN": "Sinaloa",
	"SON": "Sonora",
	"TAB": "Tabasco",
	"TAM": "Tamaulipas",
	"TLA": "Tlaxcala",
	"VER": "Veracruz",
	"YUC": "Yucatan",
	"ZAC": "Zacatecas",
}

// Name は指定コードの表示名を返す。未知のコードの場合はfalseを返す。
func Name(code string) (string, bool) {
	if name, ok := usStates[code]; ok {
		return name, true
	}
	if name, ok := canadianProvinces[code]; ok {
		return name, true
	}
	if name, ok := mexicanStates[code]; ok {
		return name, true
	}
	return "", false
}

// IsValid は指定コードが参照表に存在するかどうかを返す。
func IsValid(code string) bool {
	_, ok := Name(code)
	return ok
}

// Count は全リージョンの総数を返す。訪問済みリストの長さ上限として使用する。
func Count() int {
	return len(usStates) + len(canadianProvinces) + len(mexicanStates)
}
