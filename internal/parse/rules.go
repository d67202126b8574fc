package parse

import "regexp"

// noiseRule is a single pattern→replacement entry in the noise catalog.
// Rules are applied in order; each operates on the output of the previous.
type noiseRule struct {
	re   *regexp.Regexp
	repl string
}

func rule(pattern string) noiseRule {
	return noiseRule{re: regexp.MustCompile(pattern), repl: " "}
}

// noiseRules is the ordered catalog of release-metadata tokens removed before
// title/year extraction. More specific patterns come before generic ones so a
// generic rule never eats half of a compound token (e.g. DTS-HD MA before DTS).
var noiseRules = []noiseRule{
	// Resolution / quality markers.
	rule(`(?i)\b\d{3,4}[pi]\b`),
	rule(`(?i)\b(4K|8K|UHD|FHD|HQ|SD)\b`),

	// HDR formats, specific variants before the generic HDR token.
	rule(`(?i)\b(HDR10\+?|HDR10Plus|Dolby\s?Vision|DoVi|DV|HDR|HLG|SDR)\b`),

	// Video codecs.
	rule(`(?i)\b([xh]\s?26[45]|HEVC|AVC|AV1|VP9|XviD|DivX|MPEG-?[24])\b`),
	rule(`(?i)\b(10bit|8bit|Hi10P?)\b`),

	// Audio codecs with optional channel layouts.
	rule(`(?i)\b(DTS-HD\s?MA|DTS-HD\s?HRA|DTS-HD|DTS-X|DTS-ES|DTS)\b`),
	rule(`(?i)\b(TrueHD|Atmos|FLAC|LPCM|PCM|Opus|MP3)\b`),
	rule(`(?i)\b(DDP?|E?AC-?3|AAC)\s?\d\.\d\b`),
	rule(`(?i)\b(DDP?|E?AC-?3|AAC)\b`),
	rule(`(?i)\b\d\.\d(ch)?\b`),
	rule(`(?i)\b\dAudios?\b`),

	// Source tags.
	rule(`(?i)\b(Blu-?Ray|BDRip|BRRip|BDMV|REMUX|WEB-?DL|WEBRip|HDTV|DVDRip|HDRip|VHSRip)\b`),
	rule(`(?i)\b(iNT|PROPER|REPACK|RERIP|LIMITED|UNRATED|EXTENDED|COMPLETE|IMAX|3D|CC|CEE)\b`),

	// Streaming service tags.
	rule(`(?i)\b(NF|AMZN|ATVP|HULU|HMAX|DSNP|iT|iTunes|friDay|MyVideo|Baha|B-Global)\b`),

	// Explicit file sizes, e.g. "16.55GB" or "700MB".
	rule(`(?i)\b\d+(\.\d+)?\s?[GMK]i?B\b`),

	// Known release groups appearing without a dash separator.
	rule(`(?i)\b(CHDBits|CHD|HDChina|HDCTV|WiKi|FRDS|CMCT|MTeam|M-Team|OurTV|HHWEB|ADWeb|PTerWEB|PTer|TJUPT|NTb|FLUX|SMURF|CtrlHD|EVO|RARBG|YTS(\.(MX|AM|AG))?|YIFY|SPARKS|GECKOS|AMIABLE|DRONES|TEPES|beAst|HDSky|HDHome|HDArea|Audies|ZmWeb|QHstudIo)\b`),

	// Edition / language / subtitle tags.
	rule(`(?i)\b(Directors?\.?\s?Cut|Theatrical|Criterion|Remastered|Restored|Anniversary|Uncut|Uncensored)\b`),
	rule(`(?i)\b(MULTi|DUAL|Mandarin|Cantonese|CHS|CHT|ENG|JPN|KOR|GBR|USA)\b`),
	rule(`(?i)\b(SUBBED|DUBBED|HC|SoftSub|HardSub)\b`),

	// Chinese-language suffix tags: editions, dub/sub markers, rating
	// annotations, embedded/external subtitle markers, collection markers.
	rule(`国语|粤语|国粤双语|双语|中字|中英字幕|简繁|简体|繁体|字幕组?`),
	rule(`导演剪辑版?|加长版|未删减版?|修复版|高清版|完整版|珍藏版|剧场版`),
	rule(`内封(字幕)?|外挂(字幕)?|内嵌(字幕)?`),
	rule(`豆瓣\s?\d+(\.\d+)?分?|评分\s?\d+(\.\d+)?`),
	rule(`合集|系列|全\d+集|共\d+集`),
}

// ambiguousRules are short tokens that collide with legitimate titles ("Max",
// "Web", "Cam"). The driver applies them only after another noise rule has
// fired, the same context gate used for trailing -Group suffixes.
var ambiguousRules = []noiseRule{
	rule(`(?i)\b(WEB|DVD|CAM|TS|TC)\b`),
	rule(`(?i)\b(MAX|CR)\b`),
}

var (
	// Leading tag prefixes stripped repeatedly before the noise catalog runs.
	reLeadingBracketTag = regexp.MustCompile(`^\s*(\[[^\]]*\]|【[^】]*】)\s*`)
	reLeadingAtUser     = regexp.MustCompile(`^\s*@\S+\s+`)

	// A parenthesized 4-digit year is the one bracket group we keep.
	reParenYear = regexp.MustCompile(`[（(]\s*((?:19|20)\d{2})\s*[)）]`)

	// Any other bracketed/braced/parenthesized group, Chinese or Western.
	reBracketGroup = regexp.MustCompile(`\([^)（）]*\)|（[^（）)]*）|\[[^\]]*\]|【[^】]*】|\{[^}]*\}`)

	// Separator runs collapsed to single spaces.
	reSeparators = regexp.MustCompile(`[._\-]+`)
	reSpaces     = regexp.MustCompile(`\s+`)

	// Year extraction: "<title> (YYYY)" at end of string wins over a bare
	// "<title> YYYY" token.
	reTitleYearParen = regexp.MustCompile(`^(.*?)\s*[（(]\s*((?:19|20)\d{2})\s*[)）]\s*$`)
	// Greedy title group so names embedding a year ("Blade Runner 2049 2017")
	// bind the last year token as the release year.
	reTitleYearBare = regexp.MustCompile(`^(.*)\s+((?:19|20)\d{2})(?:\s|$)`)

	reFileExt = regexp.MustCompile(`\.[A-Za-z0-9]{2,5}$`)

	// Trailing -ReleaseGroup suffix. Applied by the driver only when other
	// release noise was present, so hyphenated titles like "Spider-Man"
	// survive a bare parse.
	reTrailingGroup = regexp.MustCompile(`-[A-Za-z0-9@]+\s*$`)
)
