package store

// Schema DDL. Table and column names follow the established database
// layout so existing audit databases keep working.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS KOSGU (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	code  TEXT NOT NULL UNIQUE,
	name  TEXT NOT NULL,
	note  TEXT
);

CREATE TABLE IF NOT EXISTS Counterparties (
	id                   INTEGER PRIMARY KEY AUTOINCREMENT,
	name                 TEXT NOT NULL,
	inn                  TEXT UNIQUE,
	is_contract_optional INTEGER DEFAULT 0
);

CREATE TABLE IF NOT EXISTS Contracts (
	id                     INTEGER PRIMARY KEY AUTOINCREMENT,
	number                 TEXT NOT NULL,
	date                   TEXT NOT NULL,
	counterparty_id        INTEGER,
	contract_amount        REAL DEFAULT 0.0,
	end_date               TEXT,
	procurement_code       TEXT,
	note                   TEXT,
	is_for_checking        INTEGER DEFAULT 0,
	is_for_special_control INTEGER DEFAULT 0,
	is_found               INTEGER DEFAULT 0,
	FOREIGN KEY(counterparty_id) REFERENCES Counterparties(id)
);

CREATE TABLE IF NOT EXISTS Payments (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	date            TEXT NOT NULL,
	doc_number      TEXT,
	direction       TEXT NOT NULL DEFAULT 'unknown',
	amount          REAL NOT NULL,
	recipient       TEXT,
	description     TEXT,
	counterparty_id INTEGER,
	note            TEXT,
	FOREIGN KEY(counterparty_id) REFERENCES Counterparties(id)
);

CREATE TABLE IF NOT EXISTS Invoices (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	number      TEXT NOT NULL,
	date        TEXT NOT NULL,
	contract_id INTEGER,
	FOREIGN KEY(contract_id) REFERENCES Contracts(id)
);

CREATE TABLE IF NOT EXISTS PaymentDetails (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	payment_id  INTEGER NOT NULL,
	kosgu_id    INTEGER,
	contract_id INTEGER,
	invoice_id  INTEGER,
	amount      REAL NOT NULL,
	FOREIGN KEY(payment_id) REFERENCES Payments(id) ON DELETE CASCADE,
	FOREIGN KEY(kosgu_id) REFERENCES KOSGU(id),
	FOREIGN KEY(contract_id) REFERENCES Contracts(id),
	FOREIGN KEY(invoice_id) REFERENCES Invoices(id)
);

CREATE TABLE IF NOT EXISTS Regexes (
	id      INTEGER PRIMARY KEY AUTOINCREMENT,
	name    TEXT NOT NULL UNIQUE,
	pattern TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS SuspiciousWords (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	word TEXT NOT NULL UNIQUE
);

CREATE TABLE IF NOT EXISTS Settings (
	id                   INTEGER PRIMARY KEY,
	organization_name    TEXT,
	period_start_date    TEXT,
	period_end_date      TEXT,
	note                 TEXT,
	import_preview_lines INTEGER DEFAULT 20,
	theme                INTEGER DEFAULT 0,
	font_size            INTEGER DEFAULT 24
);

CREATE INDEX IF NOT EXISTS idx_payments_date ON Payments(date);
CREATE INDEX IF NOT EXISTS idx_payment_details_payment ON PaymentDetails(payment_id);
CREATE INDEX IF NOT EXISTS idx_contracts_number_date ON Contracts(number, date);
CREATE INDEX IF NOT EXISTS idx_invoices_number_date ON Invoices(number, date);
`

const defaultSettingsSQL = `
INSERT OR IGNORE INTO Settings
	(id, organization_name, period_start_date, period_end_date, note,
	 import_preview_lines, theme, font_size)
VALUES (1, '', '', '', '', 20, 0, 24);
`

// Well-known pattern names the reference extractor looks up.
const (
	PatternNameContract = "Контракты"
	PatternNameInvoice  = "Накладные"
	PatternNameKosgu    = "КОСГУ"
)

// Default extraction patterns seeded at database creation. Users edit
// these rows to adapt extraction to their bank's description wording.
var defaultPatterns = []struct {
	name    string
	pattern string
}{
	{PatternNameContract, `по контракту\s*([^\s]+)\s*(\d{2}\.\d{2}\.\d{4})`},
	{PatternNameInvoice, `(?:док\.о пр-ке пост\.товаров|акт об оказ\.услуг|тов\.накладная|счет на оплату|№)\s*([^\s]+)\s*от\s*(\d{2}\.\d{2}\.\d{4})`},
	{PatternNameKosgu, `\(000-0000-0000000000-(\d+):\s*([\d=]+)\s*ЛС\s*\d+\)\s*К(\d+)`},
}
