package srpo

import (
	"fmt"
	"sort"

	"github.com/srpo-tools/srpo/models"
)

// validAreas maps the short area codes used on the command line to cluster
// names as they appear in the SRPO's tree view.
var validAreas = map[string]string{
	"BC":   "British Columbia",
	"BC01": "Sooke",
	"BC02": "West Shore",
	"BC03": "Southeast Victoria",
	"BC04": "Saanich Peninsula",
	"BC05": "Gulf Islands",
	"BC06": "Cowichan Valley",
	"BC07": "Mid-Island",
	"BC08": "Pacific Rim Oceanside",
	"BC10": "Comox Valley",
	"BC11": "Strathcona",
	"BC13": "Vancouver",
	"BC14": "Surrey-Delta-White Rock",
	"BC15": "North Shore",
	"BC16": "Squamish-Pemberton",
	"BC17": "Sunshine Coast",
	"BC18": "Langley",
	"BC19": "Tri-Cities",
	"BC20": "Golden Ears",
	"BC21": "Abbotsford Mission",
	"BC22": "Hope Chilliwack",
	"BC23": "South Okanagan",
	"BC24": "Central Okanagan",
	"BC25": "North Okanagan",
	"BC26": "Lower Thompson-Nicola",
	"BC27": "Upper Thompson-Nicola",
	"BC28": "Columbia-Shuswap",
	"BC29": "Upper Columbia",
	"BC30": "East Kootenay",
	"BC31": "West Kootenay",
	"BC32": "Boundary",
	"BC33": "Chilcotin-Cariboo",
	"BC34": "Cariboo North",
	"BC35": "Central Interior",
	"BC36": "Northern Rockies",
	"BC37": "Kitimat Stikine",
	"BC38": "Bulkely Nechako",
	"BC39": "North Coast",
	"BC41": "Haida Gwaii",
}

// AreaLabel converts an area code to the tree label SetArea needs. A
// cluster code yields "<code> - <cluster name>"; the special code "BC"
// selects the whole region and yields just the region name.
func AreaLabel(code string) (string, error) {
	name, ok := validAreas[code]
	if !ok {
		return "", models.NewPipelineError(
			models.ErrCodeInvalidInput,
			fmt.Sprintf("unknown area code %q", code),
			nil,
		)
	}
	if code == "BC" {
		return name, nil
	}
	return code + " - " + name, nil
}

// AreaCodes lists the valid area codes in sorted order, for CLI help text.
func AreaCodes() []string {
	codes := make([]string, 0, len(validAreas))
	for code := range validAreas {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
