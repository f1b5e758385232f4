package forecast

type gridPoint struct {
	NX, NY int
}

// gridCoordinates maps (sido, area) to the KMA village forecast grid cell.
// The village forecast tables key regions by the conventional short name.
var gridCoordinates = map[string]map[string]gridPoint{
	"서울": {"강남구": {61, 126}, "종로구": {60, 127}, "마포구": {59, 127}},
	"부산": {"해운대구": {99, 75}, "중구": {98, 76}},
	"대구": {"중구": {89, 90}, "수성구": {89, 90}},
	"인천": {"중구": {55, 124}, "남동구": {56, 124}},
	"광주": {"동구": {58, 74}, "서구": {57, 74}},
	"대전": {"유성구": {67, 100}, "중구": {68, 100}},
	"울산": {"남구": {102, 84}, "중구": {102, 84}},
	"경기": {"수원시": {60, 121}, "성남시": {63, 124}, "고양시": {57, 128}, "용인시": {64, 119}},
	"강원": {"춘천시": {73, 134}, "원주시": {76, 122}},
	"충북": {"청주시": {69, 106}, "충주시": {76, 114}},
	"충남": {"천안시": {63, 110}, "공주시": {66, 103}},
	"전북": {"전주시": {63, 89}, "군산시": {56, 92}},
	"전남": {"목포시": {50, 67}, "여수시": {73, 66}},
	"경북": {"포항시": {102, 94}, "경주시": {100, 91}},
	"경남": {"창원시": {90, 77}, "김해시": {95, 77}},
	"제주": {"제주시": {52, 38}, "서귀포시": {52, 33}},
}

// shortSido maps the full administrative names used by subscriptions to the
// short names the grid table is keyed by.
var shortSido = map[string]string{
	"서울특별시":   "서울",
	"부산광역시":   "부산",
	"대구광역시":   "대구",
	"인천광역시":   "인천",
	"광주광역시":   "광주",
	"대전광역시":   "대전",
	"울산광역시":   "울산",
	"경기도":     "경기",
	"강원특별자치도": "강원",
	"충청북도":    "충북",
	"충청남도":    "충남",
	"전라북도":    "전북",
	"전라남도":    "전남",
	"경상북도":    "경북",
	"경상남도":    "경남",
	"제주특별자치도": "제주",
}

// seoulGrid is the fallback cell for unmapped areas.
var seoulGrid = gridPoint{NX: 60, NY: 127}

// gridFor resolves a location to its forecast grid cell, accepting either
// the full or the short sido name.
func gridFor(sido, area string) gridPoint {
	name := sido
	if short, ok := shortSido[sido]; ok {
		name = short
	}
	if areas, ok := gridCoordinates[name]; ok {
		if p, ok := areas[area]; ok {
			return p
		}
	}
	return seoulGrid
}
