package analysis

import "math"

// vdotRow holds the Daniels equivalent race times, in seconds, for one VDOT
type vdotRow struct {
	VDOT     float64
	Time5K   float64
	Time10K  float64
	TimeHalf float64
	TimeFull float64
}

// timeAt returns the row's time for one of the standard distances
func (r vdotRow) timeAt(distanceKm float64) (float64, bool) {
	switch distanceKm {
	case Distance5K:
		return r.Time5K, true
	case Distance10K:
		return r.Time10K, true
	case DistanceHalfMara:
		return r.TimeHalf, true
	case DistanceMarathon:
		return r.TimeFull, true
	}
	return 0, false
}

// vdotTable covers recreational to elite runners (VDOT 30-85)
var vdotTable = []vdotRow{
	{30, 1860, 3876, 8388, 17496},
	{31, 1806, 3762, 8136, 16980},
	{32, 1752, 3654, 7896, 16488},
	{33, 1704, 3552, 7674, 16020},
	{34, 1656, 3450, 7458, 15570},
	{35, 1614, 3360, 7254, 15138},
	{36, 1572, 3270, 7062, 14730},
	{37, 1530, 3186, 6876, 14334},
	{38, 1494, 3102, 6702, 13956},
	{39, 1458, 3024, 6534, 13596},
	{40, 1422, 2952, 6372, 13248},
	{41, 1392, 2880, 6222, 12918},
	{42, 1356, 2814, 6078, 12600},
	{43, 1326, 2748, 5940, 12300},
	{44, 1296, 2688, 5802, 12006},
	{45, 1266, 2628, 5676, 11730},
	{46, 1242, 2568, 5550, 11460},
	{47, 1212, 2514, 5430, 11202},
	{48, 1188, 2460, 5316, 10956},
	{49, 1164, 2412, 5208, 10722},
	{50, 1140, 2364, 5100, 10494},
	{51, 1116, 2316, 4998, 10278},
	{52, 1098, 2274, 4902, 10068},
	{53, 1074, 2232, 4806, 9870},
	{54, 1056, 2190, 4716, 9678},
	{55, 1038, 2154, 4632, 9492},
	{56, 1020, 2112, 4548, 9312},
	{57, 1002, 2076, 4470, 9144},
	{58, 984, 2040, 4392, 8976},
	{59, 972, 2010, 4320, 8820},
	{60, 954, 1974, 4248, 8664},
	{61, 942, 1944, 4182, 8520},
	{62, 924, 1914, 4116, 8376},
	{63, 912, 1884, 4050, 8238},
	{64, 900, 1860, 3990, 8106},
	{65, 888, 1830, 3930, 7980},
	{66, 876, 1806, 3876, 7860},
	{67, 864, 1782, 3822, 7740},
	{68, 852, 1758, 3768, 7626},
	{69, 840, 1734, 3720, 7518},
	{70, 834, 1716, 3672, 7410},
	{71, 822, 1692, 3624, 7308},
	{72, 810, 1674, 3582, 7212},
	{73, 804, 1656, 3540, 7116},
	{74, 792, 1632, 3498, 7026},
	{75, 786, 1614, 3456, 6936},
	{76, 774, 1596, 3420, 6852},
	{77, 768, 1578, 3384, 6768},
	{78, 756, 1560, 3348, 6690},
	{79, 750, 1548, 3312, 6612},
	{80, 744, 1530, 3282, 6540},
	{81, 738, 1518, 3246, 6468},
	{82, 726, 1500, 3216, 6396},
	{83, 720, 1488, 3186, 6330},
	{84, 714, 1470, 3156, 6264},
	{85, 708, 1458, 3126, 6198},
}

// CalculateVDOT derives the Daniels VDOT from a personal best at a standard
// distance. Returns 0 for other distances or a non-positive time.
func CalculateVDOT(distanceKm float64, durationSeconds int) float64 {
	if durationSeconds <= 0 {
		return 0
	}
	if _, ok := vdotTable[0].timeAt(distanceKm); !ok {
		return 0
	}

	at := func(i int) float64 {
		t, _ := vdotTable[i].timeAt(distanceKm)
		return t
	}

	duration := float64(durationSeconds)
	low, high := 0, len(vdotTable)-1

	if duration >= at(low) {
		return vdotTable[low].VDOT
	}
	if duration <= at(high) {
		return vdotTable[high].VDOT
	}

	// Times shrink as VDOT grows
	for high-low > 1 {
		mid := (low + high) / 2
		if duration <= at(mid) {
			low = mid
		} else {
			high = mid
		}
	}

	lowTime, highTime := at(low), at(high)
	if lowTime == highTime {
		return vdotTable[low].VDOT
	}

	fraction := (lowTime - duration) / (lowTime - highTime)
	vdot := vdotTable[low].VDOT + fraction*(vdotTable[high].VDOT-vdotTable[low].VDOT)
	return math.Round(vdot*10) / 10
}

// GetVDOTLabel returns a fitness level for a VDOT value
func GetVDOTLabel(vdot float64) string {
	switch {
	case vdot >= 75:
		return "Elite"
	case vdot >= 65:
		return "Highly Competitive"
	case vdot >= 55:
		return "Competitive"
	case vdot >= 45:
		return "Advanced Recreational"
	case vdot >= 38:
		return "Intermediate"
	case vdot >= 30:
		return "Beginner"
	default:
		return "Novice"
	}
}
