package region

// Table holds the reference data the classifier matches against.
// Read-mostly: built once at startup and shared across requests.
type Table struct {
	Regions           []RegionEntry
	Cities            map[string]string
	PostalRanges      []PostalRange
	BoundingBoxes     []BoundingBox
	CountryIndicators []string
}

// RegionEntry maps a canonical region name to its text aliases.
// Aliases are matched lowercase.
type RegionEntry struct {
	Name    string
	Aliases []string
}

// PostalRange maps a numeric postal-code prefix interval to a region.
// Japanese postal codes are NNN-NNNN; the 3-digit prefix identifies the
// prefecture area.
type PostalRange struct {
	Low    int
	High   int
	Region string
}

// BoundingBox is a rectangular lat/lng region boundary. Boxes may
// overlap; they are tested in slice order, so the order below is part of
// the classifier contract.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	Region         string
}

// Contains reports whether the point falls inside the box.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lng >= b.MinLng && lng <= b.MaxLng
}

// DefaultTable returns the built-in reference data for Japanese tourism
// regions: the ten prefectures the spot catalog covers.
func DefaultTable() Table {
	return Table{
		Regions: []RegionEntry{
			{Name: "Tokyo", Aliases: []string{"tokyo", "東京", "東京都"}},
			{Name: "Osaka", Aliases: []string{"osaka", "大阪", "大阪府"}},
			{Name: "Kyoto", Aliases: []string{"kyoto", "京都", "京都府"}},
			{Name: "Hokkaido", Aliases: []string{"hokkaido", "北海道"}},
			{Name: "Okinawa", Aliases: []string{"okinawa", "沖縄", "沖縄県"}},
			{Name: "Kanagawa", Aliases: []string{"kanagawa", "神奈川", "神奈川県"}},
			{Name: "Chiba", Aliases: []string{"chiba", "千葉", "千葉県"}},
			{Name: "Aichi", Aliases: []string{"aichi", "愛知", "愛知県"}},
			{Name: "Hiroshima", Aliases: []string{"hiroshima", "広島", "広島県"}},
			{Name: "Fukuoka", Aliases: []string{"fukuoka", "福岡", "福岡県"}},
		},
		Cities: map[string]string{
			"shibuya":    "Tokyo",
			"shinjuku":   "Tokyo",
			"asakusa":    "Tokyo",
			"ginza":      "Tokyo",
			"ueno":       "Tokyo",
			"namba":      "Osaka",
			"umeda":      "Osaka",
			"gion":       "Kyoto",
			"arashiyama": "Kyoto",
			"sapporo":    "Hokkaido",
			"otaru":      "Hokkaido",
			"hakodate":   "Hokkaido",
			"naha":       "Okinawa",
			"ishigaki":   "Okinawa",
			"yokohama":   "Kanagawa",
			"kamakura":   "Kanagawa",
			"hakone":     "Kanagawa",
			"narita":     "Chiba",
			"maihama":    "Chiba",
			"nagoya":     "Aichi",
			"miyajima":   "Hiroshima",
			"onomichi":   "Hiroshima",
			"hakata":     "Fukuoka",
			"dazaifu":    "Fukuoka",
		},
		PostalRanges: []PostalRange{
			{Low: 1, High: 99, Region: "Hokkaido"},
			{Low: 100, High: 208, Region: "Tokyo"},
			{Low: 210, High: 259, Region: "Kanagawa"},
			{Low: 260, High: 299, Region: "Chiba"},
			{Low: 440, High: 498, Region: "Aichi"},
			{Low: 530, High: 599, Region: "Osaka"},
			{Low: 600, High: 629, Region: "Kyoto"},
			{Low: 720, High: 739, Region: "Hiroshima"},
			{Low: 800, High: 839, Region: "Fukuoka"},
			{Low: 900, High: 907, Region: "Okinawa"},
		},
		// Tested in order. Kyoto precedes Osaka: their boxes overlap north
		// of the Yodo river and Kyoto city sits inside both.
		BoundingBoxes: []BoundingBox{
			{MinLat: 35.5, MaxLat: 35.9, MinLng: 138.9, MaxLng: 139.95, Region: "Tokyo"},
			{MinLat: 34.7, MaxLat: 35.8, MinLng: 135.0, MaxLng: 136.1, Region: "Kyoto"},
			{MinLat: 34.3, MaxLat: 35.1, MinLng: 135.1, MaxLng: 135.8, Region: "Osaka"},
			{MinLat: 35.1, MaxLat: 35.6, MinLng: 139.0, MaxLng: 139.8, Region: "Kanagawa"},
			{MinLat: 34.9, MaxLat: 36.1, MinLng: 139.7, MaxLng: 140.9, Region: "Chiba"},
			{MinLat: 34.6, MaxLat: 35.4, MinLng: 136.7, MaxLng: 137.8, Region: "Aichi"},
			{MinLat: 34.0, MaxLat: 35.1, MinLng: 132.0, MaxLng: 133.5, Region: "Hiroshima"},
			{MinLat: 33.0, MaxLat: 34.0, MinLng: 129.9, MaxLng: 131.2, Region: "Fukuoka"},
			{MinLat: 41.3, MaxLat: 45.6, MinLng: 139.3, MaxLng: 146.0, Region: "Hokkaido"},
			{MinLat: 24.0, MaxLat: 27.1, MinLng: 122.9, MaxLng: 129.0, Region: "Okinawa"},
		},
		CountryIndicators: []string{"japan", "日本", "jp"},
	}
}
