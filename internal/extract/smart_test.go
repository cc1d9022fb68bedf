package extract_test

import (
	"testing"

	"codeberg.org/mutker/hwdiag/internal/errors"
	"codeberg.org/mutker/hwdiag/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ataAttributes = `smartctl 7.2 2020-12-30 r5155 [x86_64-linux-5.15.0] (local build)

=== START OF READ SMART DATA SECTION ===
SMART overall-health self-assessment test result: PASSED

SMART Attributes Data Structure revision number: 16
Vendor Specific SMART Attributes with Thresholds:
ID# ATTRIBUTE_NAME          FLAG     VALUE WORST THRESH TYPE      UPDATED  WHEN_FAILED RAW_VALUE
  1 Raw_Read_Error_Rate     0x000f   117   099   006    Pre-fail  Always       -       160120232
  3 Spin_Up_Time            0x0003   097   097   000    Pre-fail  Always       -       0
  5 Reallocated_Sector_Ct   0x0033   036   036   036    Pre-fail  Always   FAILING_NOW 2816
  9 Power_On_Hours          0x0032   085   085   000    Old_age   Always       -       13622
190 Airflow_Temperature_Cel 0x0022   064   045   045    Old_age   Always       -       36 (Min/Max 18/45)
194 Temperature_Celsius     0x0022   038   055   000    Old_age   Always       -       38 (0 17 0 0 0)
199 UDMA_CRC_Error_Count    0x003e   200   200   ---    Old_age   Always       -       0
`

func TestSMARTAttributes(t *testing.T) {
	attrs := extract.SMARTAttributes(lines(ataAttributes))
	require.Len(t, attrs, 7)

	assert.Equal(t, extract.Attribute{
		ID: 1, Name: "Raw_Read_Error_Rate", Value: 117, Worst: 99, Threshold: 6, Raw: "160120232",
	}, attrs[0])
	assert.Equal(t, "38 (0 17 0 0 0)", attrs[5].Raw)
	assert.Equal(t, 0, attrs[6].Threshold)
}

func TestSMARTAttributesCompactLayout(t *testing.T) {
	attrs := extract.SMARTAttributes([]string{
		"ID# ATTRIBUTE_NAME VALUE WORST THRESH",
		"  5 Reallocated_Sector_Ct 100 100 010",
	})
	require.Len(t, attrs, 1)
	assert.Equal(t, 100, attrs[0].Value)
	assert.Equal(t, 10, attrs[0].Threshold)
	assert.False(t, attrs[0].AtRisk())
}

func TestAtRiskIndependentOfRowOrder(t *testing.T) {
	rows := lines(ataAttributes)

	risky := func(attrs []extract.Attribute) map[int]bool {
		m := map[int]bool{}
		for _, a := range attrs {
			m[a.ID] = a.AtRisk()
		}
		return m
	}

	forward := risky(extract.SMARTAttributes(rows))
	for i, j := 0, len(rows)-1; i < j; i, j = i+1, j-1 {
		rows[i], rows[j] = rows[j], rows[i]
	}
	backward := risky(extract.SMARTAttributes(rows))

	assert.Equal(t, forward, backward)
	assert.True(t, forward[5], "value == threshold is at risk")
	assert.False(t, forward[1])
	assert.False(t, forward[190], "64 > 45")
}

func TestImportant(t *testing.T) {
	var names []string
	for _, a := range extract.SMARTAttributes(lines(ataAttributes)) {
		if extract.Important(a) {
			names = append(names, a.Name)
		}
	}

	assert.Equal(t, []string{"Spin_Up_Time", "Reallocated_Sector_Ct", "Power_On_Hours"}, names)
}

func TestSMARTHealth(t *testing.T) {
	status, err := extract.SMARTHealth(lines(ataAttributes))
	require.NoError(t, err)
	assert.Equal(t, "PASSED", status)
	assert.True(t, extract.HealthOK(status))

	status, err = extract.SMARTHealth([]string{"SMART Health Status: OK"})
	require.NoError(t, err)
	assert.True(t, extract.HealthOK(status))

	assert.False(t, extract.HealthOK("FAILED!"))

	_, err = extract.SMARTHealth([]string{"nothing here"})
	assert.True(t, errors.HasCode(err, errors.ErrFieldNotFound))
}

func TestSMARTTemperature(t *testing.T) {
	temp, err := extract.SMARTTemperature(lines(ataAttributes))
	require.NoError(t, err)
	assert.InDelta(t, 38.0, temp.Celsius, 0.001, "attribute 194 wins over 190")

	temp, err = extract.SMARTTemperature([]string{
		"190 Airflow_Temperature_Cel 0x0022 064 045 045 Old_age Always - 36 (Min/Max 18/45)",
	})
	require.NoError(t, err)
	assert.InDelta(t, 36.0, temp.Celsius, 0.001)
	assert.Equal(t, "36 (Min/Max 18/45)", temp.Raw)

	temp, err = extract.SMARTTemperature([]string{
		"=== START OF SMART DATA SECTION ===",
		"Temperature:                        41 Celsius",
		"Available Spare:                    100%",
	})
	require.NoError(t, err)
	assert.InDelta(t, 41.0, temp.Celsius, 0.001)
	assert.Equal(t, "41 Celsius", temp.Raw)

	temp, err = extract.SMARTTemperature([]string{
		"Current Drive Temperature:     33 C",
		"Drive Trip Temperature:        68 C",
	})
	require.NoError(t, err)
	assert.InDelta(t, 33.0, temp.Celsius, 0.001)

	_, err = extract.SMARTTemperature([]string{"SMART support is: Unavailable"})
	assert.True(t, errors.HasCode(err, errors.ErrFieldNotFound))
}

func TestLabelledTemperature(t *testing.T) {
	temp, err := extract.LabelledTemperature([]string{"Drive Trip Temperature:        68 C"}, "Drive Trip Temperature:")
	require.NoError(t, err)
	assert.InDelta(t, 68.0, temp.Celsius, 0.001)
	assert.Equal(t, "68 C", temp.Raw)
}
