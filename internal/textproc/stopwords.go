package textproc

var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"so": true, "if": true, "because": true, "in": true, "on": true, "at": true,
	"by": true, "for": true, "with": true, "about": true, "against": true,
	"between": true, "into": true, "through": true, "during": true, "before": true,
	"after": true, "above": true, "below": true, "to": true, "from": true,
	"up": true, "down": true, "off": true, "over": true, "under": true,
	"i": true, "me": true, "my": true, "myself": true, "we": true, "our": true,
	"you": true, "your": true, "he": true, "him": true, "his": true, "she": true,
	"her": true, "it": true, "its": true, "they": true, "them": true,
	"is": true, "am": true, "are": true, "was": true, "were": true, "be": true,
	"been": true, "have": true, "has": true, "had": true, "do": true, "does": true,
	"did": true, "will": true, "would": true, "shall": true, "should": true,
	"can": true, "could": true, "may": true, "might": true, "must": true,
	"not": true, "no": true, "yes": true, "there": true, "here": true,
	"just": true, "now": true, "then": true, "also": true, "too": true, "very": true,
	"that": true, "this": true, "these": true, "those": true, "as": true,
	"such": true, "than": true, "same": true, "own": true, "again": true,
	"once": true, "ever": true, "always": true, "of": true, "which": true,
	"who": true, "whom": true, "what": true, "when": true, "where": true,
	"why": true, "how": true, "all": true, "any": true, "both": true,
	"each": true, "few": true, "more": true, "most": true, "other": true,
	"some": true, "only": true, "their": true, "ours": true, "yours": true,
}
