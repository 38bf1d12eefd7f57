package charts

import (
	"math"
	"sort"

	"github.com/mmcloughlin/geohash"

	"github.com/octobees/job-market-dashboard/internal/jobsapi"
)

const (
	maxBubbleRadius = 50.0
	minBubbleRadius = 3.0
	mapWidth        = 800
	mapHeight       = 600
	mapPadding      = 60
)

// MaxClusterPrecision bounds geohash cluster precision.
const MaxClusterPrecision = 6

// pastel is the qualitative palette used for bubbles.
var pastel = []string{
	"rgb(102, 197, 204)", "rgb(246, 207, 113)", "rgb(248, 156, 116)", "rgb(220, 176, 242)",
	"rgb(135, 197, 95)", "rgb(158, 185, 243)", "rgb(254, 136, 177)", "rgb(201, 219, 116)",
	"rgb(139, 224, 164)", "rgb(180, 151, 231)", "rgb(179, 179, 179)",
}

// Bubble is one zone drawn on the map.
type Bubble struct {
	Label   string
	Members int
	Count   int
	Lat     float64
	Lon     float64
	X       float64
	Y       float64
	R       float64
	Color   string
}

// BubbleMap is a projected set of bubbles ready for an SVG template.
type BubbleMap struct {
	Bubbles []Bubble
	Width   int
	Height  int
}

// Empty reports whether there is anything to draw.
func (m BubbleMap) Empty() bool {
	return len(m.Bubbles) == 0
}

// Cluster merges zones sharing a geohash cell of the given precision. The merged bubble
// sits at the count-weighted centroid and keeps the label of its largest zone.
// A precision of zero returns one bubble per zone.
func Cluster(zones []jobsapi.ZoneCount, precision uint) []Bubble {
	if precision > MaxClusterPrecision {
		precision = MaxClusterPrecision
	}

	bubbles := make([]Bubble, 0, len(zones))
	if precision == 0 {
		for _, z := range zones {
			bubbles = append(bubbles, Bubble{Label: z.Label, Members: 1, Count: z.Count, Lat: z.Latitude, Lon: z.Longitude})
		}
		return bubbles
	}

	type cell struct {
		bubble Bubble
		best   int
		sumLat float64
		sumLon float64
		weight float64
	}
	cells := make(map[string]*cell)
	order := make([]string, 0)
	for _, z := range zones {
		key := geohash.EncodeWithPrecision(z.Latitude, z.Longitude, precision)
		c, ok := cells[key]
		if !ok {
			c = &cell{best: -1}
			cells[key] = c
			order = append(order, key)
		}
		w := float64(z.Count)
		if w <= 0 {
			w = 1
		}
		c.sumLat += z.Latitude * w
		c.sumLon += z.Longitude * w
		c.weight += w
		c.bubble.Count += z.Count
		c.bubble.Members++
		if z.Count > c.best {
			c.best = z.Count
			c.bubble.Label = z.Label
		}
	}

	for _, key := range order {
		c := cells[key]
		c.bubble.Lat = c.sumLat / c.weight
		c.bubble.Lon = c.sumLon / c.weight
		bubbles = append(bubbles, c.bubble)
	}
	return bubbles
}

// Project places bubbles on an equirectangular projection fitted to their bounding box,
// with radii proportional to the square root of the count.
func Project(bubbles []Bubble) BubbleMap {
	m := BubbleMap{Width: mapWidth, Height: mapHeight}
	if len(bubbles) == 0 {
		return m
	}

	out := make([]Bubble, len(bubbles))
	copy(out, bubbles)
	// larger bubbles first so smaller ones stay clickable on top
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	minLat, maxLat := out[0].Lat, out[0].Lat
	minLon, maxLon := out[0].Lon, out[0].Lon
	maxCount := 0
	for _, b := range out {
		minLat, maxLat = math.Min(minLat, b.Lat), math.Max(maxLat, b.Lat)
		minLon, maxLon = math.Min(minLon, b.Lon), math.Max(maxLon, b.Lon)
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	// longitude degrees shrink with latitude
	midLat := (minLat + maxLat) / 2 * math.Pi / 180
	spanX := (maxLon - minLon) * math.Cos(midLat)
	spanY := maxLat - minLat
	innerW := float64(mapWidth - 2*mapPadding)
	innerH := float64(mapHeight - 2*mapPadding)
	scale := 0.0
	if spanX > 0 || spanY > 0 {
		scale = math.Min(safeDiv(innerW, spanX), safeDiv(innerH, spanY))
	}

	for i := range out {
		b := &out[i]
		b.X = float64(mapWidth) / 2
		b.Y = float64(mapHeight) / 2
		if scale > 0 {
			b.X += ((b.Lon-minLon)*math.Cos(midLat) - spanX/2) * scale
			b.Y -= ((b.Lat - minLat) - spanY/2) * scale
		}
		b.R = minBubbleRadius
		if maxCount > 0 && b.Count > 0 {
			b.R = math.Max(minBubbleRadius, maxBubbleRadius*math.Sqrt(float64(b.Count)/float64(maxCount)))
		}
		b.Color = pastel[i%len(pastel)]
		b.X, b.Y, b.R = round1(b.X), round1(b.Y), round1(b.R)
	}
	m.Bubbles = out
	return m
}

func safeDiv(a, b float64) float64 {
	if b <= 0 {
		return math.Inf(1)
	}
	return a / b
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
