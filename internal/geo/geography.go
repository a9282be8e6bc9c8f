// Package geo holds the static administrative geography of Uzbekistan:
// 14 regions plus the autonomous republic and the capital city, each with
// its districts and approximate center coordinates used for satellite and
// weather lookups. The tables are reference constants and never change at
// runtime.
package geo

// Coordinates is a WGS84 latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location identifies a district together with its region and center point.
type Location struct {
	Region    string  `json:"region"`
	District  string  `json:"district"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type district struct {
	name   string
	center Coordinates
}

type region struct {
	name      string
	center    Coordinates
	districts []district
}

var regions = []region{
	{
		name:   "Tashkent City",
		center: Coordinates{41.2995, 69.2401},
		districts: []district{
			{"Almazar", Coordinates{41.3167, 69.2167}},
			{"Bektemir", Coordinates{41.2167, 69.3333}},
			{"Chilanzar", Coordinates{41.2833, 69.1833}},
			{"Yakkasaray", Coordinates{41.2833, 69.2667}},
			{"Mirzo Ulugbek", Coordinates{41.3500, 69.2833}},
			{"Mirabad", Coordinates{41.3000, 69.2833}},
			{"Sergeli", Coordinates{41.2333, 69.2000}},
			{"Shaykhantakhur", Coordinates{41.3333, 69.2333}},
			{"Uchtepa", Coordinates{41.3167, 69.1500}},
			{"Yashnabad", Coordinates{41.2833, 69.3500}},
			{"Yunusabad", Coordinates{41.3667, 69.2167}},
		},
	},
	{
		name:   "Tashkent Region",
		center: Coordinates{41.3167, 69.6500},
		districts: []district{
			{"Angren", Coordinates{41.0167, 70.1333}},
			{"Bekabad", Coordinates{40.2167, 69.2500}},
			{"Olmaliq", Coordinates{40.8500, 69.6000}},
			{"Chirchiq", Coordinates{41.4667, 69.5833}},
			{"Bostanliq", Coordinates{41.6000, 70.2000}},
			{"Buka", Coordinates{41.3333, 69.4667}},
			{"Chinaz", Coordinates{40.9333, 68.7667}},
			{"Qibray", Coordinates{41.3833, 69.4833}},
			{"Oqqorgon", Coordinates{40.9167, 69.0500}},
			{"Parkent", Coordinates{41.2833, 69.6667}},
			{"Piskent", Coordinates{40.9000, 69.3500}},
			{"Tashkent", Coordinates{41.3667, 69.4333}},
			{"Nurafshon", Coordinates{41.0500, 69.2333}},
			{"Yangiyul", Coordinates{41.1167, 69.0500}},
			{"Zangiota", Coordinates{41.2167, 69.0667}},
		},
	},
	{
		name:   "Andijan",
		center: Coordinates{40.7833, 72.3442},
		districts: []district{
			{"Andijan City", Coordinates{40.7833, 72.3442}},
			{"Altinkul", Coordinates{40.8333, 72.1000}},
			{"Asaka", Coordinates{40.6333, 72.2333}},
			{"Baliqchi", Coordinates{40.8667, 72.4667}},
			{"Boz", Coordinates{40.6833, 72.5667}},
			{"Buloqboshi", Coordinates{40.6167, 72.3833}},
			{"Izboskan", Coordinates{40.9167, 72.2500}},
			{"Jalaquduq", Coordinates{40.7167, 72.6167}},
			{"Kurgontepa", Coordinates{40.7333, 72.0833}},
			{"Marhamat", Coordinates{40.5167, 72.3167}},
			{"Oltinkul", Coordinates{40.8500, 72.1333}},
			{"Pakhtaabad", Coordinates{40.9167, 72.5333}},
			{"Shahrikhan", Coordinates{40.7000, 72.0500}},
			{"Ulugnar", Coordinates{40.9500, 72.1833}},
			{"Khojaabad", Coordinates{40.5500, 72.5500}},
		},
	},
	{
		name:   "Bukhara",
		center: Coordinates{39.7747, 64.4286},
		districts: []district{
			{"Bukhara City", Coordinates{39.7747, 64.4286}},
			{"Alat", Coordinates{39.5500, 63.9000}},
			{"Gijduvon", Coordinates{40.1000, 64.6833}},
			{"Jondor", Coordinates{39.7167, 64.1333}},
			{"Kogon", Coordinates{39.7167, 64.5500}},
			{"Olot", Coordinates{39.5500, 63.9167}},
			{"Peshku", Coordinates{39.4833, 64.5500}},
			{"Qorakul", Coordinates{39.5000, 63.8500}},
			{"Qorovulbozor", Coordinates{39.5167, 64.8000}},
			{"Romitan", Coordinates{39.9333, 64.3833}},
			{"Shofirkon", Coordinates{40.1167, 64.5000}},
			{"Vobkent", Coordinates{40.0167, 64.5167}},
		},
	},
	{
		name:   "Fergana",
		center: Coordinates{40.3842, 71.7889},
		districts: []district{
			{"Fergana City", Coordinates{40.3842, 71.7889}},
			{"Quva", Coordinates{40.5167, 72.0833}},
			{"Marg'ilon", Coordinates{40.4667, 71.7167}},
			{"Qoqon", Coordinates{40.5333, 70.9333}},
			{"Oltiariq", Coordinates{40.4333, 71.4667}},
			{"Bag'dod", Coordinates{40.3333, 71.2333}},
			{"Beshariq", Coordinates{40.4667, 70.6000}},
			{"Buvayda", Coordinates{40.6333, 71.0333}},
			{"Dang'ara", Coordinates{40.5833, 70.9167}},
			{"Furqat", Coordinates{40.2667, 71.5167}},
			{"Qoshtepa", Coordinates{40.5500, 71.0833}},
			{"Rishton", Coordinates{40.3667, 71.2833}},
			{"Sokh", Coordinates{39.9667, 71.1333}},
			{"Toshloq", Coordinates{40.5333, 71.8500}},
			{"Uchkuprik", Coordinates{40.5333, 71.0500}},
			{"Uzbekistan", Coordinates{40.2333, 71.1333}},
			{"Yozyovon", Coordinates{40.1333, 71.6000}},
		},
	},
	{
		name:   "Jizzakh",
		center: Coordinates{40.1158, 67.8422},
		districts: []district{
			{"Jizzakh City", Coordinates{40.1158, 67.8422}},
			{"Arnasoy", Coordinates{40.6000, 67.9667}},
			{"Bakhmal", Coordinates{39.8167, 68.2500}},
			{"Dostlik", Coordinates{40.5167, 67.7833}},
			{"Forish", Coordinates{40.3333, 67.2333}},
			{"Gallaorol", Coordinates{40.2167, 68.1000}},
			{"Mirzachul", Coordinates{40.6500, 67.3500}},
			{"Pakhtakor", Coordinates{40.2167, 67.7667}},
			{"Yangiobod", Coordinates{39.9500, 68.5833}},
			{"Zomin", Coordinates{39.9500, 68.4000}},
			{"Zafarobod", Coordinates{40.5333, 68.2500}},
			{"Zarbdor", Coordinates{40.4667, 67.5500}},
		},
	},
	{
		name:   "Kashkadarya",
		center: Coordinates{38.8608, 65.7981},
		districts: []district{
			{"Qarshi", Coordinates{38.8608, 65.7981}},
			{"Chiroqchi", Coordinates{38.9500, 66.5500}},
			{"Dehqonobod", Coordinates{38.4000, 66.5000}},
			{"Guzor", Coordinates{38.6167, 66.2500}},
			{"Qamashi", Coordinates{38.8333, 65.6000}},
			{"Karshi", Coordinates{38.8500, 65.7833}},
			{"Kasbi", Coordinates{38.9333, 65.4333}},
			{"Kitob", Coordinates{39.1333, 66.8833}},
			{"Koson", Coordinates{39.0500, 65.5833}},
			{"Mirishkor", Coordinates{38.8833, 65.2833}},
			{"Muborak", Coordinates{39.3000, 65.2500}},
			{"Nishon", Coordinates{38.5500, 65.4333}},
			{"Shahrisabz", Coordinates{39.0500, 66.8333}},
			{"Yakkabog", Coordinates{38.9833, 66.7333}},
		},
	},
	{
		name:   "Khorezm",
		center: Coordinates{41.5500, 60.6333},
		districts: []district{
			{"Urgench", Coordinates{41.5500, 60.6333}},
			{"Bogot", Coordinates{41.5000, 60.8333}},
			{"Gurlan", Coordinates{41.6667, 60.4000}},
			{"Khonqa", Coordinates{41.5167, 60.8167}},
			{"Hazorasp", Coordinates{41.3167, 61.0667}},
			{"Khiva", Coordinates{41.3833, 60.3500}},
			{"Qoshkopir", Coordinates{41.5833, 61.0500}},
			{"Shovot", Coordinates{41.6500, 60.5500}},
			{"Tuproqqala", Coordinates{41.2000, 60.9167}},
			{"Yangiariq", Coordinates{41.4000, 60.5500}},
			{"Yangibozor", Coordinates{41.7167, 60.5833}},
		},
	},
	{
		name:   "Namangan",
		center: Coordinates{40.9983, 71.6726},
		districts: []district{
			{"Namangan City", Coordinates{40.9983, 71.6726}},
			{"Chortoq", Coordinates{41.0667, 71.0333}},
			{"Chust", Coordinates{41.0000, 71.2333}},
			{"Kosonsoy", Coordinates{41.2500, 71.5333}},
			{"Mingbuloq", Coordinates{40.7667, 71.3000}},
			{"Namangan", Coordinates{40.9833, 71.3833}},
			{"Norin", Coordinates{40.9000, 71.9333}},
			{"Pop", Coordinates{41.0167, 70.7833}},
			{"Torakurgan", Coordinates{41.0167, 71.5000}},
			{"Uchqorgon", Coordinates{41.1167, 71.0333}},
			{"Uychi", Coordinates{41.0833, 71.9333}},
			{"Yangiqorgon", Coordinates{41.2000, 71.7167}},
		},
	},
	{
		name:   "Navoiy",
		center: Coordinates{40.0844, 65.3792},
		districts: []district{
			{"Navoiy City", Coordinates{40.0844, 65.3792}},
			{"Karmana", Coordinates{40.1333, 65.3667}},
			{"Konimex", Coordinates{40.3000, 64.9667}},
			{"Navbahor", Coordinates{39.9500, 65.4667}},
			{"Nurota", Coordinates{40.5667, 65.6833}},
			{"Qiziltepa", Coordinates{39.9167, 65.5000}},
			{"Tomdi", Coordinates{41.3000, 64.9167}},
			{"Uchquduq", Coordinates{42.1500, 63.5500}},
			{"Zarafshon", Coordinates{41.5667, 64.1833}},
		},
	},
	{
		name:   "Samarkand",
		center: Coordinates{39.6542, 66.9597},
		districts: []district{
			{"Samarkand City", Coordinates{39.6542, 66.9597}},
			{"Bulung'ur", Coordinates{39.7667, 67.2667}},
			{"Ishtikhan", Coordinates{39.9833, 66.5000}},
			{"Jomboy", Coordinates{39.7167, 67.1500}},
			{"Kattaqorgon", Coordinates{39.9000, 66.2667}},
			{"Narpay", Coordinates{39.9833, 66.0500}},
			{"Nurobod", Coordinates{39.5333, 67.3500}},
			{"Oqdaryo", Coordinates{39.9000, 66.8333}},
			{"Paxtachi", Coordinates{39.6500, 66.3667}},
			{"Payariq", Coordinates{39.5500, 66.8333}},
			{"Pastdargom", Coordinates{39.5333, 66.6000}},
			{"Samarkand", Coordinates{39.6833, 66.9167}},
			{"Toyloq", Coordinates{39.4833, 67.1500}},
			{"Urgut", Coordinates{39.4000, 67.2500}},
		},
	},
	{
		name:   "Sirdaryo",
		center: Coordinates{40.8375, 68.6650},
		districts: []district{
			{"Guliston", Coordinates{40.5000, 68.7833}},
			{"Boyovut", Coordinates{40.2833, 68.5833}},
			{"Mirzaobod", Coordinates{40.2333, 68.6500}},
			{"Oqoltin", Coordinates{40.3833, 68.1500}},
			{"Sardoba", Coordinates{40.1667, 68.1167}},
			{"Saykhunobod", Coordinates{40.2667, 67.9500}},
			{"Sirdaryo", Coordinates{40.8333, 68.6667}},
			{"Xovos", Coordinates{40.1167, 68.4000}},
			{"Yangier", Coordinates{40.2667, 68.8167}},
		},
	},
	{
		name:   "Surkhandarya",
		center: Coordinates{37.2242, 67.2783},
		districts: []district{
			{"Termez", Coordinates{37.2333, 67.2833}},
			{"Angor", Coordinates{37.5000, 67.0167}},
			{"Bandixon", Coordinates{38.1833, 67.4667}},
			{"Boysun", Coordinates{38.2167, 67.2000}},
			{"Denov", Coordinates{38.2667, 67.8833}},
			{"Jarqorgon", Coordinates{37.5000, 67.4167}},
			{"Kumkurgon", Coordinates{37.7833, 67.7000}},
			{"Muzrabot", Coordinates{37.2833, 66.6500}},
			{"Oltinsoy", Coordinates{38.3000, 68.2000}},
			{"Qiziriq", Coordinates{37.6333, 67.1833}},
			{"Sariosiyo", Coordinates{38.4167, 67.9500}},
			{"Sherobod", Coordinates{37.6500, 66.0500}},
			{"Shurchi", Coordinates{37.5333, 67.2167}},
			{"Uzun", Coordinates{38.1167, 68.0333}},
		},
	},
	{
		name:   "Karakalpakstan",
		center: Coordinates{43.8000, 59.0000},
		districts: []district{
			{"Nukus", Coordinates{42.4667, 59.6000}},
			{"Amudaryo", Coordinates{42.1000, 59.2167}},
			{"Beruniy", Coordinates{41.7000, 60.8167}},
			{"Chimboy", Coordinates{42.9333, 59.7833}},
			{"Ellikqala", Coordinates{41.9000, 60.0833}},
			{"Kegeyli", Coordinates{42.7833, 59.6000}},
			{"Konlikul", Coordinates{42.1000, 59.5833}},
			{"Kungirot", Coordinates{43.0667, 58.9000}},
			{"Moynaq", Coordinates{43.7667, 59.0333}},
			{"Qongirot", Coordinates{43.0500, 58.9000}},
			{"Qoraozak", Coordinates{42.8000, 59.8333}},
			{"Shumanay", Coordinates{42.3500, 59.3833}},
			{"Taxtakopir", Coordinates{42.4000, 59.0167}},
			{"Tortkul", Coordinates{41.5500, 60.8333}},
			{"Xojeli", Coordinates{42.4000, 59.4500}},
		},
	},
}

var regionIndex = buildIndex()

func buildIndex() map[string]*region {
	idx := make(map[string]*region, len(regions))
	for i := range regions {
		idx[regions[i].name] = &regions[i]
	}
	return idx
}

// Regions returns all region names in their canonical order.
func Regions() []string {
	names := make([]string, len(regions))
	for i, r := range regions {
		names[i] = r.name
	}
	return names
}

// DistrictsOf returns the district names of a region in catalog order,
// or an empty slice when the region is unknown.
func DistrictsOf(regionName string) []string {
	r, ok := regionIndex[regionName]
	if !ok {
		return nil
	}
	names := make([]string, len(r.districts))
	for i, d := range r.districts {
		names[i] = d.name
	}
	return names
}

// CoordinatesOf returns the center coordinates of a district, or of the
// region itself when district is empty. The second return value reports
// whether the lookup succeeded.
func CoordinatesOf(regionName, districtName string) (Coordinates, bool) {
	r, ok := regionIndex[regionName]
	if !ok {
		return Coordinates{}, false
	}
	if districtName == "" {
		return r.center, true
	}
	for _, d := range r.districts {
		if d.name == districtName {
			return d.center, true
		}
	}
	return Coordinates{}, false
}

// AllLocations returns every (region, district) pair with its coordinates,
// in catalog order. Used by the satellite cache warmer.
func AllLocations() []Location {
	var locs []Location
	for _, r := range regions {
		for _, d := range r.districts {
			locs = append(locs, Location{
				Region:    r.name,
				District:  d.name,
				Latitude:  d.center.Latitude,
				Longitude: d.center.Longitude,
			})
		}
	}
	return locs
}
