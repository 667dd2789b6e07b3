package cas

// builtinTable is the Cas list that ships with the app. New enzymes are
// appended at the end, the user's edited copy lives at config.CasDB
const builtinTable = `# name	pam	side
cpf1	TTTN	5'
SpCas9	NGG	3'
SpCas9_VRER	NGCG	3'
SpCas9_EQR	NGAG	3'
SpCas9_VQR_1	NGAN	3'
SpCas9_VQR_2	NGNG	3'
StCas9	NNAGAAW	3'
StCas9_2	NGGNG	3'
SaCas9	NNGRRT	3'
SaCas9_KKH	NNNRRT	3'
nmCas9	NNNNGATT	3'
cjCas9	NNNNACAC	3'
`
