package wordbank

// Curated word lists per difficulty. Easy words are short everyday
// objects and animals, medium words are multi-syllable things and
// places, hard words are abstract or technical.

var easyWords = []Entry{
	{Word: "cat", Hint: "a pet that purrs"},
	{Word: "dog", Hint: "man's best friend"},
	{Word: "fish", Hint: "lives in water"},
	{Word: "bird", Hint: "has feathers and flies"},
	{Word: "frog", Hint: "green and jumps"},
	{Word: "bear", Hint: "big and furry, loves honey"},
	{Word: "lion", Hint: "king of the jungle"},
	{Word: "snake", Hint: "long and slithers"},
	{Word: "turtle", Hint: "carries its home on its back"},
	{Word: "spider", Hint: "spins a web"},
	{Word: "cup", Hint: "you drink from it"},
	{Word: "key", Hint: "opens a lock"},
	{Word: "door", Hint: "you walk through it"},
	{Word: "lamp", Hint: "lights up a room"},
	{Word: "candle", Hint: "wax with a flame"},
	{Word: "tree", Hint: "has a trunk and leaves"},
	{Word: "flower", Hint: "blooms in spring"},
	{Word: "sun", Hint: "shines during the day"},
	{Word: "moon", Hint: "shines at night"},
	{Word: "star", Hint: "twinkles in the sky"},
	{Word: "rain", Hint: "falls from clouds"},
	{Word: "snow", Hint: "cold and white"},
	{Word: "hat", Hint: "worn on the head"},
	{Word: "shoe", Hint: "worn on the foot"},
	{Word: "car", Hint: "four wheels and an engine"},
	{Word: "boat", Hint: "floats on water"},
	{Word: "train", Hint: "runs on rails"},
	{Word: "book", Hint: "full of pages"},
	{Word: "clock", Hint: "tells the time"},
	{Word: "apple", Hint: "keeps the doctor away"},
}

var mediumWords = []Entry{
	{Word: "elephant", Hint: "huge animal with a trunk"},
	{Word: "penguin", Hint: "bird that swims but cannot fly"},
	{Word: "dolphin", Hint: "clever swimmer that clicks"},
	{Word: "octopus", Hint: "eight arms underwater"},
	{Word: "butterfly", Hint: "starts as a caterpillar"},
	{Word: "flamingo", Hint: "pink bird standing on one leg"},
	{Word: "computer", Hint: "you type on it"},
	{Word: "keyboard", Hint: "rows of letter keys"},
	{Word: "camera", Hint: "captures a moment"},
	{Word: "umbrella", Hint: "keeps the rain off"},
	{Word: "backpack", Hint: "carried on your shoulders"},
	{Word: "mountain", Hint: "high peak to climb"},
	{Word: "volcano", Hint: "erupts with lava"},
	{Word: "rainbow", Hint: "seven colors after rain"},
	{Word: "lightning", Hint: "flash before the thunder"},
	{Word: "tornado", Hint: "spinning column of wind"},
	{Word: "sandwich", Hint: "filling between two slices"},
	{Word: "spaghetti", Hint: "long pasta with sauce"},
	{Word: "pineapple", Hint: "spiky tropical fruit"},
	{Word: "guitar", Hint: "six strings to strum"},
	{Word: "piano", Hint: "black and white keys"},
	{Word: "trumpet", Hint: "brass you blow into"},
	{Word: "hospital", Hint: "where doctors work"},
	{Word: "library", Hint: "quiet place full of books"},
	{Word: "stadium", Hint: "where crowds watch games"},
	{Word: "bicycle", Hint: "two wheels, pedal power"},
	{Word: "helicopter", Hint: "flies with spinning blades"},
	{Word: "submarine", Hint: "travels under the sea"},
	{Word: "necklace", Hint: "jewelry around the neck"},
	{Word: "painting", Hint: "art on a canvas"},
}

var hardWords = []Entry{
	{Word: "refrigerator", Hint: "keeps food cold"},
	{Word: "microscope", Hint: "makes tiny things visible"},
	{Word: "telescope", Hint: "brings the stars closer"},
	{Word: "stethoscope", Hint: "doctor listens through it"},
	{Word: "constellation", Hint: "pattern of stars"},
	{Word: "architecture", Hint: "the art of buildings"},
	{Word: "philosophy", Hint: "the love of wisdom"},
	{Word: "metamorphosis", Hint: "caterpillar to butterfly"},
	{Word: "photosynthesis", Hint: "how plants make food"},
	{Word: "biodiversity", Hint: "variety of life"},
	{Word: "infrastructure", Hint: "roads, bridges, pipes"},
	{Word: "archaeology", Hint: "digging up the past"},
	{Word: "psychology", Hint: "study of the mind"},
	{Word: "meteorology", Hint: "study of the weather"},
	{Word: "astronomy", Hint: "study of the stars"},
	{Word: "trajectory", Hint: "path of a thrown object"},
	{Word: "momentum", Hint: "mass times velocity"},
	{Word: "perpendicular", Hint: "meeting at a right angle"},
	{Word: "symmetrical", Hint: "same on both sides"},
	{Word: "exponential", Hint: "growth that keeps doubling"},
	{Word: "imagination", Hint: "pictures in your head"},
	{Word: "perseverance", Hint: "refusing to give up"},
	{Word: "civilization", Hint: "an organized society"},
	{Word: "parliament", Hint: "where laws are debated"},
	{Word: "bureaucracy", Hint: "paperwork and red tape"},
	{Word: "ecosystem", Hint: "living things and their home"},
	{Word: "wilderness", Hint: "untamed natural land"},
	{Word: "navigation", Hint: "finding your way"},
	{Word: "expedition", Hint: "a journey with a purpose"},
	{Word: "championship", Hint: "the final prize to win"},
}
