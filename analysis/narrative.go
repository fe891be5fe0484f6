package analysis

import (
	"fmt"
	"strconv"
)

const premiseText = "As larger change in price provides greater potential profits for " +
	"trades in Forex, we want to find the largest candles (candle size " +
	"represents price fluctuations within a given time window, in this " +
	"case 15 minutes)."

const rangeOverviewText = "Let's get an overview of candle sizes.\n" +
	"\n" +
	"Plotting the candle size distribution, we can see that many candles " +
	"are very small, so we want to filter out those candles (specifically " +
	"if they have no price change, likely denoting the market is closed), " +
	"and recalculate the mean and standard deviation to avoid noise.\n" +
	"\n" +
	"Plotting (above average) candles by time shows peaks in " +
	"concentrated clusters, suggesting candles with higher range occur in " +
	"groups by time, but not obviously predictably, as they are " +
	"irregularly distributed."

const weekdaysText = "Let's see if any days are especially better for finding large " +
	"candles.\n" +
	"We can see that Tuesday through Friday are the best days to find " +
	"above average candles, as these days have the most total candles, " +
	"most candles above average size, and the largest cumulative candle " +
	"range. Of these four days, none is especially outstanding."

func volumeVsRangeText(dropOff float64) string {
	return "Perhaps certain volumes will have larger candles?\n" +
		"\n" +
		"It seems that there are two approximate peaks with a high " +
		"concentration of large candles located at certain volumes. Perhaps " +
		"more interestingly, the bottom of the distribution has a general " +
		"upward slope.\n" +
		"\n" +
		"Let's consider candles about midway through this concentrated body's " +
		"upward slope, which we can arbitrarily pick as the second peak. It " +
		fmt.Sprintf("seems that there are less large candles after volume %s, and only a ", volume(dropOff)) +
		"sparse distribution of candles under the average, so let's add an " +
		"additional constraint to consider candles below this volume."
}

func volumeSubsetText(c SubsetComparison) string {
	return "Looking at candles with volumes past our second peak in candle size:\n" +
		fmt.Sprintf("We see that %d%% of candles are larger than the average, as opposed ", c.PercentAboveMean) +
		"to ~50% unfiltered. The trade off is that there are less total " +
		fmt.Sprintf("candles (%d%% in this set) and inherently less total candles above ", c.PercentOfTotal) +
		"average size in this set."
}

func priceLevelsText(threshold float64) string {
	return "Let's see if any price levels are especially better for finding " +
		"large candles.\n" +
		"With darker columns and sparse gaps, it seems that candles, in " +
		"general, occur more frequently at certain price levels, but large " +
		"candles do not relatively become more common than smaller candles " +
		fmt.Sprintf("at any particular price level, except for perhaps slightly past a price of %g. ", threshold) +
		"The trade off is that candles occur much less frequently past this price level."
}

func priceSubsetText(threshold float64, c SubsetComparison) string {
	return fmt.Sprintf("Looking at candles with prices past our price threshold, %g:\n", threshold) +
		fmt.Sprintf("%d%% (as opposed to 50%% without filtering) of candles are above the ", c.PercentAboveMean) +
		"average range, so there is a slight increase in average candle size " +
		"when considering this subset. The trade off is that we only have " +
		fmt.Sprintf("%d%% of all candles, and so we inherently have less large candles.", c.PercentOfTotal)
}

// volume prints a volume threshold in full, 6e9 as "6000000000".
func volume(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
