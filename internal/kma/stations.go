package kma

// stationCodes maps (sido, si-gun-gu) to the KMA surface observation station
// serving it. Districts without their own station point at the nearest one.
var stationCodes = map[string]map[string]int{
	"서울특별시": {
		"강남구": 108, "강동구": 108, "강북구": 108, "강서구": 108, "관악구": 108,
		"광진구": 108, "구로구": 108, "금천구": 108, "노원구": 108, "도봉구": 108,
		"동대문구": 108, "동작구": 108, "마포구": 108, "서대문구": 108, "서초구": 108,
		"성동구": 108, "성북구": 108, "송파구": 108, "양천구": 108, "영등포구": 108,
		"용산구": 108, "은평구": 108, "종로구": 108, "중구": 108, "중랑구": 108,
	},
	"경기도": {
		"수원시": 119, "성남시": 119, "고양시": 108, "용인시": 119, "부천시": 108,
		"안산시": 119, "안양시": 119, "남양주시": 108, "화성시": 119, "평택시": 119,
		"의정부시": 108, "시흥시": 119, "광명시": 108, "김포시": 108, "군포시": 119,
		"하남시": 108, "오산시": 119, "이천시": 203, "안성시": 119, "구리시": 108,
		"의왕시": 119, "양주시": 108, "동두천시": 98, "과천시": 108, "광주시": 119,
		"파주시": 98, "여주시": 203, "양평군": 119, "가평군": 211, "연천군": 98,
		"포천시": 98,
	},
	"부산광역시": {
		"해운대구": 159, "부산진구": 159, "동래구": 159, "남구": 159, "중구": 159,
		"서구": 159, "사하구": 159, "금정구": 159, "강서구": 159, "연제구": 159,
		"수영구": 159, "사상구": 159, "북구": 159, "영도구": 159, "동구": 159,
		"기장군": 159,
	},
	"대구광역시": {
		"남구": 143, "달서구": 143, "달성군": 143, "동구": 143, "북구": 143,
		"서구": 143, "수성구": 143, "중구": 143,
	},
	"인천광역시": {
		"강화군": 201, "계양구": 112, "미추홀구": 112, "남동구": 112, "동구": 112,
		"부평구": 112, "서구": 112, "연수구": 112, "옹진군": 112,
	},
	"광주광역시": {
		"광산구": 156, "남구": 156, "동구": 156, "북구": 156, "서구": 156,
	},
	"대전광역시": {
		"대덕구": 133, "동구": 133, "서구": 133, "유성구": 133, "중구": 133,
	},
	"울산광역시": {
		"남구": 152, "동구": 152, "북구": 152, "울주군": 152, "중구": 152,
	},
	"충청남도": {
		"천안시": 232, "공주시": 238, "보령시": 235, "아산시": 232, "서산시": 129,
		"논산시": 238, "계룡시": 238, "당진시": 129, "금산군": 238, "부여군": 238,
		"서천군": 235, "청양군": 238, "홍성군": 129, "예산군": 232, "태안군": 129,
	},
	"충청북도": {
		"청주시": 131, "충주시": 127, "제천시": 221, "보은군": 226, "옥천군": 130,
		"영동군": 135, "진천군": 131, "괴산군": 127, "음성군": 127, "단양군": 221,
		"증평군": 131,
	},
	"강원특별자치도": {
		"춘천시": 101, "원주시": 114, "강릉시": 105, "동해시": 106, "태백시": 216,
		"속초시": 90, "삼척시": 104, "홍천군": 212, "횡성군": 213, "영월군": 121,
		"평창군": 217, "정선군": 217, "철원군": 95, "화천군": 212, "양구군": 95,
		"인제군": 211, "고성군": 90, "양양군": 90,
	},
	"전라북도": {
		"전주시": 146, "군산시": 140, "익산시": 243, "정읍시": 245, "남원시": 247,
		"김제시": 244, "완주군": 146, "진안군": 248, "무주군": 248, "장수군": 248,
		"임실군": 247, "순창군": 247, "고창군": 172, "부안군": 243,
	},
	"전라남도": {
		"광주시": 156, "목포시": 165, "여수시": 168, "순천시": 174, "나주시": 170,
		"광양시": 266, "담양군": 260, "곡성군": 269, "구례군": 252, "고흥군": 262,
		"보성군": 258, "화순군": 264, "장흥군": 266, "강진군": 259, "해남군": 261,
		"영암군": 268, "무안군": 270, "함평군": 272, "영광군": 273, "장성군": 260,
		"완도군": 259, "진도군": 175, "신안군": 165,
	},
	"경상북도": {
		"대구시": 143, "포항시": 138, "경주시": 283, "김천시": 279, "안동시": 136,
		"구미시": 279, "영주시": 272, "영천시": 281, "상주시": 137, "문경시": 273,
		"경산시": 143, "군위군": 279, "의성군": 278, "청송군": 276, "영양군": 277,
		"영덕군": 277, "청도군": 143, "고령군": 279, "성주군": 279, "칠곡군": 279,
		"예천군": 272, "봉화군": 271, "울진군": 130, "울릉군": 115,
	},
	"경상남도": {
		"부산시": 159, "울산시": 152, "창원시": 155, "진주시": 192, "통영시": 162,
		"사천시": 284, "김해시": 253, "밀양시": 257, "거제시": 294, "양산시": 288,
		"의령군": 192, "함안군": 155, "창녕군": 255, "고성군": 293, "남해군": 295,
		"하동군": 284, "산청군": 192, "함양군": 192, "거창군": 284, "합천군": 192,
	},
	"제주특별자치도": {
		"제주시": 184, "서귀포시": 189,
	},
}

// StationCode resolves a (sido, area) pair to its observation station.
func StationCode(sido, area string) (int, bool) {
	areas, ok := stationCodes[sido]
	if !ok {
		return 0, false
	}
	code, ok := areas[area]
	return code, ok
}

// Sidos returns every supported top-level region name.
func Sidos() []string {
	names := make([]string, 0, len(stationCodes))
	for name := range stationCodes {
		names = append(names, name)
	}
	return names
}
