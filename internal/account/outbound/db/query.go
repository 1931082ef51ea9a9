package db

const accountColumns = `id, full_name, email, otp, created_at`

const (
	queryGetAccountByEmail = `SELECT ` + accountColumns + ` FROM accounts WHERE email = $1`

	queryGetAccountByID = `SELECT ` + accountColumns + ` FROM accounts WHERE id = $1`

	queryCreateAccount = `INSERT INTO accounts (id, full_name, email, otp, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + accountColumns

	queryUpdateAccountOTPByEmail = `UPDATE accounts SET otp = $2 WHERE email = $1
RETURNING ` + accountColumns

	queryClearAccountOTP = `UPDATE accounts SET otp = NULL WHERE id = $1 AND otp = $2`
)
