package mysql

const upsertRoomSQL = `
INSERT INTO folio_rooms
  (id, number, type, status, guest_id, extra_charges)
VALUES
  (?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  number        = VALUES(number),
  type          = VALUES(type),
  status        = VALUES(status),
  guest_id      = VALUES(guest_id),
  extra_charges = VALUES(extra_charges),
  exported_at   = CURRENT_TIMESTAMP
`

const insertPurchasesPrefix = "INSERT INTO folio_purchases\n  (id, room_id, product_id, product_name, price, recorded_at)\nVALUES "

// Ledger entries never change, so a re-export keeps the existing row.
const insertPurchasesOnDup = " ON DUPLICATE KEY UPDATE id = id"

const insertMissSQL = `
INSERT INTO export_misses (room_id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE reason = VALUES(reason), seen_at = CURRENT_TIMESTAMP
`

const roomTotalSQL = `
SELECT COALESCE(SUM(price), 0)
FROM folio_purchases
WHERE room_id = ?
`
