// Package language holds the speech model's language catalogue and the
// normalization rules the CLI applies to --language.
//
// Values may be given as catalogue codes ("de"), English names ("german"),
// or ISO 639-2 codes ("deu"); all resolve to the code the model expects.
// "auto" is kept as a sentinel meaning detect.
package language
