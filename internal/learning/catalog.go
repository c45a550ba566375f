package learning

import (
	"fmt"
	"strconv"
)

type CategoryID string

const (
	Alphabet    CategoryID = "alphabet"
	Numbers     CategoryID = "numbers"
	Animals     CategoryID = "animals"
	Objects     CategoryID = "objects"
	Body        CategoryID = "body"
	Universe    CategoryID = "universe"
	Colors      CategoryID = "colors"
	Shapes      CategoryID = "shapes"
	Fruits      CategoryID = "fruits"
	Professions CategoryID = "professions"
	Vehicles    CategoryID = "vehicles"
	Emotions    CategoryID = "emotions"
	Weather     CategoryID = "weather"
)

type Category struct {
	ID          CategoryID `json:"id"`
	Title       string     `json:"title"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
}

// Item is one card of a category. Description is only set for letters,
// where it holds an example word.
type Item struct {
	ID          string     `json:"id"`
	Label       string     `json:"label"`
	Emoji       string     `json:"emoji"`
	Category    CategoryID `json:"category"`
	Description string     `json:"description,omitempty"`
}

var categories = []Category{
	{Alphabet, "Huruf", "🅰️", "A B C"},
	{Numbers, "Angka", "🔢", "1 2 3"},
	{Animals, "Hewan", "🦁", "Dunia Satwa"},
	{Fruits, "Buah", "🍓", "Segar & Sehat"},
	{Vehicles, "Kendaraan", "🚗", "Transportasi"},
	{Professions, "Profesi", "👮", "Cita-citaku"},
	{Colors, "Warna", "🎨", "Warna-warni"},
	{Shapes, "Bentuk", "🔶", "Geometri"},
	{Body, "Tubuh", "👂", "Anggota Badan"},
	{Emotions, "Emosi", "😊", "Perasaanku"},
	{Weather, "Cuaca", "⛈️", "Langit Kita"},
	{Universe, "Alam", "🪐", "Luar Angkasa"},
	{Objects, "Benda", "🧸", "Sekitar Kita"},
}

var alphabetExamples = map[string]string{
	"A": "Apel", "B": "Bola", "C": "Ceri", "D": "Domba", "E": "Ember",
	"F": "Foto", "G": "Gajah", "H": "Hujan", "I": "Itik", "J": "Jeruk",
	"K": "Kuda", "L": "Lampu", "M": "Mobil", "N": "Nanas", "O": "Obor",
	"P": "Panda", "Q": "Quran", "R": "Roti", "S": "Susu", "T": "Topi",
	"U": "Udang", "V": "Vas", "W": "Wortel", "X": "Xilofon", "Y": "Yoyo", "Z": "Zebra",
}

func alphabetItems() []Item {
	items := make([]Item, 0, 26)
	for c := 'A'; c <= 'Z'; c++ {
		letter := string(c)
		items = append(items, Item{
			ID:          "alpha-" + letter,
			Label:       letter,
			Emoji:       letter,
			Category:    Alphabet,
			Description: alphabetExamples[letter],
		})
	}
	return items
}

func numberItems() []Item {
	items := make([]Item, 0, 20)
	for n := 1; n <= 20; n++ {
		s := strconv.Itoa(n)
		items = append(items, Item{ID: "num-" + s, Label: s, Emoji: s, Category: Numbers})
	}
	return items
}

// card is the compact form of the static items below.
type card struct {
	id, label, emoji string
}

var staticItems = []struct {
	category CategoryID
	cards    []card
}{
	{Vehicles, []card{
		{"veh-1", "Mobil", "🚗"}, {"veh-2", "Bus", "🚌"}, {"veh-3", "Polisi", "🚓"},
		{"veh-4", "Ambulans", "🚑"}, {"veh-5", "Pemadam", "🚒"}, {"veh-6", "Sepeda", "🚲"},
		{"veh-7", "Motor", "🛵"}, {"veh-8", "Pesawat", "✈️"}, {"veh-9", "Helikopter", "🚁"},
		{"veh-10", "Kapal", "🚢"}, {"veh-11", "Roket", "🚀"}, {"veh-12", "Truk", "🚚"},
	}},
	{Professions, []card{
		{"prof-1", "Polisi", "👮"}, {"prof-2", "Dokter", "👩‍⚕️"}, {"prof-3", "Pemadam", "👨‍🚒"},
		{"prof-4", "Koki", "👨‍🍳"}, {"prof-5", "Guru", "👩‍🏫"}, {"prof-6", "Astronot", "👨‍🚀"},
		{"prof-7", "Petani", "👨‍🌾"}, {"prof-8", "Pilot", "👨‍✈️"}, {"prof-9", "Artis", "👨‍🎨"},
		{"prof-10", "Ilmuwan", "👨‍🔬"},
	}},
	{Emotions, []card{
		{"emo-1", "Senang", "😊"}, {"emo-2", "Sedih", "😢"}, {"emo-3", "Marah", "😠"},
		{"emo-4", "Kaget", "😱"}, {"emo-5", "Lucu", "😂"}, {"emo-6", "Cinta", "🥰"},
		{"emo-7", "Takut", "😨"}, {"emo-8", "Mengantuk", "😴"},
	}},
	{Weather, []card{
		{"wea-1", "Cerah", "☀️"}, {"wea-2", "Hujan", "🌧️"}, {"wea-3", "Berawan", "☁️"},
		{"wea-4", "Petir", "⛈️"}, {"wea-5", "Salju", "❄️"}, {"wea-6", "Angin", "💨"},
		{"wea-7", "Pelangi", "🌈"},
	}},
	{Colors, []card{
		{"col-1", "Merah", "🔴"}, {"col-2", "Biru", "🔵"}, {"col-3", "Hijau", "🟢"},
		{"col-4", "Kuning", "🟡"}, {"col-5", "Oranye", "🟠"}, {"col-6", "Ungu", "🟣"},
		{"col-7", "Hitam", "⚫"}, {"col-8", "Putih", "⚪"}, {"col-9", "Cokelat", "🟤"},
		{"col-10", "Merah Muda", "🌸"},
	}},
	{Shapes, []card{
		{"shp-1", "Lingkaran", "⭕"}, {"shp-2", "Kotak", "🟥"}, {"shp-3", "Segitiga", "🔺"},
		{"shp-4", "Bintang", "⭐"}, {"shp-5", "Hati", "❤️"}, {"shp-6", "Layang-layang", "🔶"},
	}},
	{Fruits, []card{
		{"fr-1", "Apel", "🍎"}, {"fr-2", "Pisang", "🍌"}, {"fr-3", "Jeruk", "🍊"},
		{"fr-4", "Anggur", "🍇"}, {"fr-5", "Semangka", "🍉"}, {"fr-6", "Wortel", "🥕"},
		{"fr-7", "Jagung", "🌽"}, {"fr-8", "Brokoli", "🥦"}, {"fr-9", "Stroberi", "🍓"},
		{"fr-10", "Nanas", "🍍"}, {"fr-11", "Alpukat", "🥑"}, {"fr-12", "Ceri", "🍒"},
	}},
	{Animals, []card{
		{"an-1", "Singa", "🦁"}, {"an-2", "Kucing", "🐱"}, {"an-3", "Anjing", "🐶"},
		{"an-4", "Gajah", "🐘"}, {"an-5", "Monyet", "🐵"}, {"an-6", "Ayam", "🐔"},
		{"an-7", "Bebek", "🦆"}, {"an-8", "Ikan", "🐠"}, {"an-9", "Kupu-kupu", "🦋"},
		{"an-10", "Dinosaurus", "🦖"}, {"an-11", "Panda", "🐼"}, {"an-12", "Jerapah", "🦒"},
		{"an-13", "Koala", "🐨"}, {"an-14", "Kelinci", "🐰"},
	}},
	{Objects, []card{
		{"ob-2", "Bola", "⚽"}, {"ob-3", "Buku", "📚"}, {"ob-4", "Pensil", "✏️"},
		{"ob-5", "Gitar", "🎸"}, {"ob-8", "Rumah", "🏠"}, {"ob-9", "Jam", "⏰"},
		{"ob-10", "Kamera", "📷"}, {"ob-11", "Komputer", "💻"}, {"ob-12", "Kunci", "🔑"},
		{"ob-13", "Hadiah", "🎁"},
	}},
	{Body, []card{
		{"bd-1", "Mata", "👀"}, {"bd-2", "Telinga", "👂"}, {"bd-3", "Hidung", "👃"},
		{"bd-4", "Mulut", "👄"}, {"bd-5", "Tangan", "✋"}, {"bd-6", "Kaki", "🦶"},
		{"bd-7", "Otak", "🧠"}, {"bd-8", "Gigi", "🦷"}, {"bd-9", "Lidah", "👅"},
	}},
	{Universe, []card{
		{"uv-1", "Matahari", "☀️"}, {"uv-2", "Bulan", "🌙"}, {"uv-3", "Bintang", "⭐"},
		{"uv-4", "Bumi", "🌍"}, {"uv-6", "Api", "🔥"}, {"uv-7", "Air", "💧"},
		{"uv-8", "Pohon", "🌳"}, {"uv-11", "Gunung", "🗻"}, {"uv-12", "Kaktus", "🌵"},
	}},
}

// Catalog is the read-only set of categories and items.
type Catalog struct {
	categories []Category
	items      []Item
	byID       map[string]int
}

// NewCatalog builds the built-in catalog.
func NewCatalog() *Catalog {
	items := append(alphabetItems(), numberItems()...)
	for _, group := range staticItems {
		for _, c := range group.cards {
			items = append(items, Item{ID: c.id, Label: c.label, Emoji: c.emoji, Category: group.category})
		}
	}

	byID := make(map[string]int, len(items))
	for i, it := range items {
		byID[it.ID] = i
	}
	return &Catalog{categories: categories, items: items, byID: byID}
}

// Categories returns the categories in display order.
func (c *Catalog) Categories() []Category {
	return append([]Category(nil), c.categories...)
}

func (c *Catalog) Category(id CategoryID) (Category, bool) {
	for _, cat := range c.categories {
		if cat.ID == id {
			return cat, true
		}
	}
	return Category{}, false
}

// Items returns the items of one category in catalog order.
func (c *Catalog) Items(id CategoryID) ([]Item, error) {
	if _, ok := c.Category(id); !ok {
		return nil, fmt.Errorf("unknown category %q", id)
	}
	var out []Item
	for _, it := range c.items {
		if it.Category == id {
			out = append(out, it)
		}
	}
	return out, nil
}

func (c *Catalog) Item(id string) (Item, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}
